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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/fulfillment/internal/finance/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/finance/internal/repository/dao"
)

type TransactionRepository interface {
	Append(ctx context.Context, txns []domain.Transaction) error
	FindByOrderID(ctx context.Context, orderID int64) ([]domain.Transaction, error)
}

type transactionRepository struct {
	dao dao.TransactionDAO
}

func NewTransactionRepository(d dao.TransactionDAO) TransactionRepository {
	return &transactionRepository{dao: d}
}

func (r *transactionRepository) Append(ctx context.Context, txns []domain.Transaction) error {
	return r.dao.Insert(ctx, slice.Map(txns, func(idx int, src domain.Transaction) dao.FinancialTransaction {
		return r.toEntity(src)
	}))
}

func (r *transactionRepository) FindByOrderID(ctx context.Context, orderID int64) ([]domain.Transaction, error) {
	txns, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return slice.Map(txns, func(idx int, src dao.FinancialTransaction) domain.Transaction {
		return r.toDomain(src)
	}), nil
}

func (r *transactionRepository) toEntity(t domain.Transaction) dao.FinancialTransaction {
	return dao.FinancialTransaction{
		Type:        t.Type.ToUint8(),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		OrderId:     t.OrderID,
		Date:        t.Date,
	}
}

func (r *transactionRepository) toDomain(t dao.FinancialTransaction) domain.Transaction {
	return domain.Transaction{
		ID:          t.Id,
		Type:        domain.TransactionType(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		OrderID:     t.OrderId,
		Date:        t.Date,
	}
}
