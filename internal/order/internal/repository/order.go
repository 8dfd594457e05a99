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
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository/dao"
)

var ErrOrderNotFound = errors.New("订单不存在")

type OrderRepository interface {
	CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id int64) (domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id int64) (domain.Order, error)
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	CompareAndSwapStatus(ctx context.Context, id, version int64, status domain.Status) (bool, error)
	DeleteOrder(ctx context.Context, id int64) error
	ListOrders(ctx context.Context, offset, limit int, status domain.Status) ([]domain.Order, error)
	TotalOrders(ctx context.Context, status domain.Status) (int64, error)
}

type orderRepository struct {
	dao dao.OrderDAO
}

func NewOrderRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{dao: d}
}

func (r *orderRepository) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	items := slice.Map(o.Items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductId:   src.ProductID,
			ProductName: src.ProductName,
			Qty:         src.Qty,
			Unit:        src.Unit,
			Price:       src.Price,
		}
	})
	id, err := r.dao.Create(ctx, r.toEntity(o), items)
	if err != nil {
		return domain.Order{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	o, err := r.dao.FindByID(ctx, id)
	return r.withItems(ctx, o, err)
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id int64) (domain.Order, error) {
	o, err := r.dao.FindByIDForUpdate(ctx, id)
	return r.withItems(ctx, o, err)
}

func (r *orderRepository) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	o, err := r.dao.FindBySN(ctx, sn)
	return r.withItems(ctx, o, err)
}

func (r *orderRepository) withItems(ctx context.Context, o dao.Order, err error) (domain.Order, error) {
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	items, err := r.dao.FindItemsByOrderIDs(ctx, []int64{o.Id})
	if err != nil {
		return domain.Order{}, err
	}
	return r.toDomain(o, items), nil
}

func (r *orderRepository) CompareAndSwapStatus(ctx context.Context, id, version int64, status domain.Status) (bool, error) {
	return r.dao.CompareAndSwapStatus(ctx, id, version, status.String())
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	err := r.dao.Delete(ctx, id)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func (r *orderRepository) ListOrders(ctx context.Context, offset, limit int, status domain.Status) ([]domain.Order, error) {
	os, err := r.dao.List(ctx, offset, limit, status.String())
	if err != nil {
		return nil, err
	}
	ids := slice.Map(os, func(idx int, src dao.Order) int64 {
		return src.Id
	})
	items, err := r.dao.FindItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]dao.OrderItem, len(os))
	for _, item := range items {
		grouped[item.OrderId] = append(grouped[item.OrderId], item)
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src, grouped[src.Id])
	}), nil
}

func (r *orderRepository) TotalOrders(ctx context.Context, status domain.Status) (int64, error) {
	return r.dao.Count(ctx, status.String())
}

func (r *orderRepository) toEntity(o domain.Order) dao.Order {
	return dao.Order{
		Id:          o.ID,
		SN:          o.SN,
		Kind:        o.Kind.String(),
		Status:      o.Status.String(),
		Version:     o.Version,
		Source:      o.Source,
		CustomerId:  o.CustomerID,
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		ServiceFee:  o.ServiceFee,
		Discount:    o.Discount,
		GrandTotal:  o.GrandTotal,
	}
}

func (r *orderRepository) toDomain(o dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:          o.Id,
		SN:          o.SN,
		Kind:        domain.Kind(o.Kind),
		Status:      domain.Status(o.Status),
		Version:     o.Version,
		Source:      o.Source,
		CustomerID:  o.CustomerId,
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		ServiceFee:  o.ServiceFee,
		Discount:    o.Discount,
		GrandTotal:  o.GrandTotal,
		Ctime:       o.Ctime,
		Utime:       o.Utime,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				ProductID:   src.ProductId,
				ProductName: src.ProductName,
				Qty:         src.Qty,
				Unit:        src.Unit,
				Price:       src.Price,
			}
		}),
	}
}
