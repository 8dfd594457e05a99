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
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository/dao"
)

type OrderEventRepository interface {
	Append(ctx context.Context, evt domain.OutboxEvent) error
	FindPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []int64) error
	IncrAttempts(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}

type orderEventRepository struct {
	dao dao.OrderEventDAO
}

func NewOrderEventRepository(d dao.OrderEventDAO) OrderEventRepository {
	return &orderEventRepository{dao: d}
}

func (r *orderEventRepository) Append(ctx context.Context, evt domain.OutboxEvent) error {
	return r.dao.Insert(ctx, dao.OrderEvent{
		EventId: evt.EventID,
		Topic:   evt.Topic,
		Key:     evt.Key,
		Payload: string(evt.Payload),
	})
}

func (r *orderEventRepository) FindPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	evts, err := r.dao.FindPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(evts, func(idx int, src dao.OrderEvent) domain.OutboxEvent {
		return domain.OutboxEvent{
			ID:       src.Id,
			EventID:  src.EventId,
			Topic:    src.Topic,
			Key:      src.Key,
			Payload:  []byte(src.Payload),
			Attempts: src.Attempts,
		}
	}), nil
}

func (r *orderEventRepository) MarkSent(ctx context.Context, ids []int64) error {
	return r.dao.MarkSent(ctx, ids)
}

func (r *orderEventRepository) IncrAttempts(ctx context.Context, id int64) error {
	return r.dao.IncrAttempts(ctx, id)
}

func (r *orderEventRepository) MarkFailed(ctx context.Context, id int64) error {
	return r.dao.MarkFailed(ctx, id)
}
