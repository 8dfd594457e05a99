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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/dao"
)

var (
	ErrAccountNotFound            = errors.New("积分账户不存在")
	ErrDuplicatedPointTransaction = dao.ErrDuplicatedPointTransaction
)

// AccountChange 一次积分主记录变更
type AccountChange struct {
	Points        int64
	TotalSpent    int64
	OrderCount    int64
	Tier          domain.Tier
	LastOrderDate int64
}

type LoyaltyRepository interface {
	FindAccount(ctx context.Context, customerID int64) (domain.Account, error)
	LockOrCreateAccount(ctx context.Context, customerID int64) (domain.Account, error)
	AddPointTransaction(ctx context.Context, t domain.PointTransaction) (int64, error)
	ApplyChange(ctx context.Context, customerID int64, c AccountChange) error
	DeductPoints(ctx context.Context, customerID int64, points int64) (bool, error)
	ListPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]domain.PointTransaction, error)
}

type loyaltyRepository struct {
	dao dao.LoyaltyDAO
}

func NewLoyaltyRepository(d dao.LoyaltyDAO) LoyaltyRepository {
	return &loyaltyRepository{dao: d}
}

func (r *loyaltyRepository) FindAccount(ctx context.Context, customerID int64) (domain.Account, error) {
	acc, err := r.dao.FindAccount(ctx, customerID)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return r.toAccount(acc), nil
}

func (r *loyaltyRepository) LockOrCreateAccount(ctx context.Context, customerID int64) (domain.Account, error) {
	acc, err := r.dao.LockOrCreateAccount(ctx, customerID, domain.TierBronze.String())
	if err != nil {
		return domain.Account{}, err
	}
	return r.toAccount(acc), nil
}

func (r *loyaltyRepository) AddPointTransaction(ctx context.Context, t domain.PointTransaction) (int64, error) {
	return r.dao.InsertPointTransaction(ctx, dao.PointTransaction{
		CustomerId:  t.CustomerID,
		Key:         t.Key,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        t.Type.String(),
	})
}

func (r *loyaltyRepository) ApplyChange(ctx context.Context, customerID int64, c AccountChange) error {
	err := r.dao.IncrAccount(ctx, customerID, dao.AccountDelta{
		Points:        c.Points,
		TotalSpent:    c.TotalSpent,
		OrderCount:    c.OrderCount,
		Tier:          c.Tier.String(),
		LastOrderDate: c.LastOrderDate,
	})
	if errors.Is(err, dao.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	return err
}

func (r *loyaltyRepository) DeductPoints(ctx context.Context, customerID int64, points int64) (bool, error) {
	return r.dao.DecrPoints(ctx, customerID, points)
}

func (r *loyaltyRepository) ListPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]domain.PointTransaction, error) {
	ts, err := r.dao.FindPointTransactions(ctx, customerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ts, func(idx int, src dao.PointTransaction) domain.PointTransaction {
		return domain.PointTransaction{
			ID:          src.Id,
			CustomerID:  src.CustomerId,
			Key:         src.Key,
			Amount:      src.Amount,
			Description: src.Description,
			Type:        domain.PointTransactionType(src.Type),
			Ctime:       src.Ctime,
		}
	}), nil
}

func (r *loyaltyRepository) toAccount(acc dao.LoyaltyAccount) domain.Account {
	return domain.Account{
		CustomerID:    acc.CustomerId,
		Points:        acc.Points,
		Tier:          domain.Tier(acc.Tier),
		TotalSpent:    acc.TotalSpent,
		OrderCount:    acc.OrderCount,
		LastOrderDate: acc.LastOrderDate,
		Version:       acc.Version,
	}
}
