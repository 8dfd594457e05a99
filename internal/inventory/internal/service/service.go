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

	"github.com/ecodeclub/fulfillment/internal/inventory/internal/repository"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrInvalidQuantity = errors.New("库存变更数量非法")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/inventory.mock.go -package=inventorymocks Service
type Service interface {
	// IncreaseStock 归还库存, 商品已被删除时返回 false 且不报错
	IncreaseStock(ctx context.Context, productID int64, qty int64) (bool, error)
	GetStock(ctx context.Context, productID int64) (int64, error)
}

type service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

func (s *service) IncreaseStock(ctx context.Context, productID int64, qty int64) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("%w: productID=%d, qty=%d", ErrInvalidQuantity, productID, qty)
	}
	if productID <= 0 {
		return false, nil
	}
	return s.repo.IncreaseStock(ctx, productID, qty)
}

func (s *service) GetStock(ctx context.Context, productID int64) (int64, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}
