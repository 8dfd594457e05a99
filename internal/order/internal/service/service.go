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
	"fmt"

	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/pkg/sequencenumber"
	"golang.org/x/sync/errgroup"
)

var (
	ErrOrderNotFound = repository.ErrOrderNotFound
	ErrInvalidOrder  = domain.ErrInvalidOrder
)

//go:generate mockgen -source=./service.go -destination=../../mocks/order.mock.go -package=ordermocks Service
type Service interface {
	// CreateOrder 供结算模块创建订单, 新订单总是 PENDING
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrder(ctx context.Context, id int64) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int, status domain.Status) ([]domain.Order, int64, error)
}

type service struct {
	repo        repository.OrderRepository
	snGenerator *sequencenumber.Generator
}

func NewService(repo repository.OrderRepository, snGenerator *sequencenumber.Generator) Service {
	return &service{repo: repo, snGenerator: snGenerator}
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.Kind == "" {
		order.Kind = domain.KindShop
	}
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	if order.SN == "" {
		sn, err := s.snGenerator.Generate(order.CustomerID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("生成订单序列号失败: %w", err)
		}
		order.SN = sn
	}
	order.Status = domain.StatusPending
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) FindOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, status domain.Status) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrders(ctx, offset, limit, status)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, status)
		return err
	})
	return os, total, eg.Wait()
}
