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
	"github.com/ecodeclub/fulfillment/internal/notification/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/notification/internal/repository/dao"
)

type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (int64, error)
	FindByCustomerID(ctx context.Context, customerID int64, offset, limit int) ([]domain.Notification, error)
}

type notificationRepository struct {
	dao dao.NotificationDAO
}

func NewNotificationRepository(d dao.NotificationDAO) NotificationRepository {
	return &notificationRepository{dao: d}
}

func (r *notificationRepository) Create(ctx context.Context, n domain.Notification) (int64, error) {
	return r.dao.Insert(ctx, dao.Notification{
		CustomerId: n.CustomerID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type.String(),
		IsRead:     n.IsRead,
	})
}

func (r *notificationRepository) FindByCustomerID(ctx context.Context, customerID int64, offset, limit int) ([]domain.Notification, error) {
	ns, err := r.dao.FindByCustomerID(ctx, customerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ns, func(idx int, src dao.Notification) domain.Notification {
		return domain.Notification{
			ID:         src.Id,
			CustomerID: src.CustomerId,
			Title:      src.Title,
			Message:    src.Message,
			Type:       domain.Type(src.Type),
			IsRead:     src.IsRead,
			Ctime:      src.Ctime,
		}
	}), nil
}
