// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound   = repository.ErrAccountNotFound
	ErrDuplicatedAccrual = repository.ErrDuplicatedPointTransaction
	ErrPointsNotEnough   = errors.New("积分不足")
	ErrInvalidAccrual    = errors.New("积分入账参数非法")
	ErrInvalidMultiplier = errors.New("等级倍率非法")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/loyalty.mock.go -package=loyaltymocks Service
type Service interface {
	// Accrue 按订单金额给顾客入账积分并重新计算等级, 同一个 Key 只会成功一次
	Accrue(ctx context.Context, req domain.AccrualRequest) (domain.Accrual, error)
	// Redeem 扣减积分
	Redeem(ctx context.Context, customerID, points int64, key, desc string) (domain.Account, error)
	GetAccount(ctx context.Context, customerID int64) (domain.Account, error)
	ListPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]domain.PointTransaction, error)
	SaveTierMultiplier(ctx context.Context, tm domain.TierMultiplier) error
	TierMultipliers(ctx context.Context) ([]domain.TierMultiplier, error)
}

type service struct {
	repo           repository.LoyaltyRepository
	multiplierRepo repository.TierMultiplierRepository
	tx             gormx.Transactor
	logger         *elog.Component
	now            func() time.Time
}

func NewService(repo repository.LoyaltyRepository,
	multiplierRepo repository.TierMultiplierRepository,
	tx gormx.Transactor) Service {
	return &service{
		repo:           repo,
		multiplierRepo: multiplierRepo,
		tx:             tx,
		logger:         elog.DefaultLogger.With(elog.FieldComponent("loyalty.service")),
		now:            time.Now,
	}
}

func (s *service) Accrue(ctx context.Context, req domain.AccrualRequest) (domain.Accrual, error) {
	if req.CustomerID <= 0 || req.Amount < 0 {
		return domain.Accrual{}, fmt.Errorf("%w: customerID=%d, amount=%d", ErrInvalidAccrual, req.CustomerID, req.Amount)
	}
	if req.Key == "" {
		if req.OrderID <= 0 {
			return domain.Accrual{}, fmt.Errorf("%w: 缺少幂等键", ErrInvalidAccrual)
		}
		req.Key = fmt.Sprintf("order:%d", req.OrderID)
	}
	multipliers, err := s.multiplierRepo.Multipliers(ctx)
	if err != nil {
		return domain.Accrual{}, err
	}

	var res domain.Accrual
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		acc, err := s.repo.LockOrCreateAccount(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		multiplier, ok := multipliers[acc.Tier]
		if !ok {
			multiplier = decimal.NewFromInt(1)
		}
		earned := domain.PointsFor(req.Amount, multiplier)
		tier := domain.TierFor(acc.TotalSpent + req.Amount)

		_, err = s.repo.AddPointTransaction(ctx, domain.PointTransaction{
			CustomerID:  req.CustomerID,
			Key:         req.Key,
			Amount:      earned,
			Description: fmt.Sprintf("订单 %s 获得积分", req.OrderSN),
			Type:        domain.PointTransactionTypeEarned,
		})
		if err != nil {
			return err
		}
		err = s.repo.ApplyChange(ctx, req.CustomerID, repository.AccountChange{
			Points:        earned,
			TotalSpent:    req.Amount,
			OrderCount:    1,
			Tier:          tier,
			LastOrderDate: s.now().UnixMilli(),
		})
		if err != nil {
			return err
		}
		res = domain.Accrual{
			PointsEarned: earned,
			Tier:         tier,
			Points:       acc.Points + earned,
		}
		return nil
	})
	if err != nil {
		return domain.Accrual{}, err
	}
	s.logger.Debug("积分入账", elog.Int64("customerID", req.CustomerID),
		elog.Int64("earned", res.PointsEarned), elog.String("tier", res.Tier.String()))
	return res, nil
}

func (s *service) Redeem(ctx context.Context, customerID, points int64, key, desc string) (domain.Account, error) {
	if customerID <= 0 || points <= 0 || key == "" {
		return domain.Account{}, fmt.Errorf("%w: customerID=%d, points=%d", ErrInvalidAccrual, customerID, points)
	}
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		_, err := s.repo.AddPointTransaction(ctx, domain.PointTransaction{
			CustomerID:  customerID,
			Key:         key,
			Amount:      -points,
			Description: desc,
			Type:        domain.PointTransactionTypeSpent,
		})
		if err != nil {
			return err
		}
		ok, err := s.repo.DeductPoints(ctx, customerID, points)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: customerID=%d, points=%d", ErrPointsNotEnough, customerID, points)
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	return s.repo.FindAccount(ctx, customerID)
}

func (s *service) GetAccount(ctx context.Context, customerID int64) (domain.Account, error) {
	return s.repo.FindAccount(ctx, customerID)
}

func (s *service) ListPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]domain.PointTransaction, error) {
	return s.repo.ListPointTransactions(ctx, customerID, offset, limit)
}

func (s *service) SaveTierMultiplier(ctx context.Context, tm domain.TierMultiplier) error {
	if !tm.Tier.IsValid() || tm.Multiplier.IsNegative() {
		return fmt.Errorf("%w: tier=%s, multiplier=%s", ErrInvalidMultiplier, tm.Tier, tm.Multiplier)
	}
	return s.multiplierRepo.Save(ctx, tm)
}

func (s *service) TierMultipliers(ctx context.Context) ([]domain.TierMultiplier, error) {
	ms, err := s.multiplierRepo.Multipliers(ctx)
	if err != nil {
		return nil, err
	}
	tiers := []domain.Tier{domain.TierBronze, domain.TierSilver, domain.TierGold}
	res := make([]domain.TierMultiplier, 0, len(tiers))
	for _, t := range tiers {
		res = append(res, domain.TierMultiplier{Tier: t, Multiplier: ms[t]})
	}
	return res, nil
}
