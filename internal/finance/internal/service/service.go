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

	"github.com/ecodeclub/fulfillment/internal/finance/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/finance/internal/repository"
)

var ErrInvalidTransaction = errors.New("财务流水非法")

//go:generate mockgen -source=./service.go -destination=../../mocks/finance.mock.go -package=financemocks Service
type Service interface {
	// Record 追加财务流水, 要么全部成功要么全部失败
	Record(ctx context.Context, txns []domain.Transaction) error
	ListByOrderID(ctx context.Context, orderID int64) ([]domain.Transaction, error)
}

type service struct {
	repo repository.TransactionRepository
}

func NewService(repo repository.TransactionRepository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, txns []domain.Transaction) error {
	for _, t := range txns {
		if !t.Type.IsValid() {
			return fmt.Errorf("%w: 未知类型 %d", ErrInvalidTransaction, t.Type)
		}
		if t.Amount < 0 {
			return fmt.Errorf("%w: 金额为负 %d", ErrInvalidTransaction, t.Amount)
		}
		if t.Category == "" {
			return fmt.Errorf("%w: 分类为空", ErrInvalidTransaction)
		}
	}
	return s.repo.Append(ctx, txns)
}

func (s *service) ListByOrderID(ctx context.Context, orderID int64) ([]domain.Transaction, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}
