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

	"github.com/ecodeclub/fulfillment/internal/notification/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/notification/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./service.go -destination=../../mocks/notification.mock.go -package=notificationmocks Service
type Service interface {
	// Emit 尽力而为地写入一条通知, 失败只记录日志.
	// 在工作单元内调用时使用嵌套事务, 失败不会影响外层事务
	Emit(ctx context.Context, n domain.Notification)
	List(ctx context.Context, customerID int64, offset, limit int) ([]domain.Notification, error)
}

type service struct {
	repo   repository.NotificationRepository
	tx     gormx.Transactor
	logger *elog.Component
}

func NewService(repo repository.NotificationRepository, tx gormx.Transactor) Service {
	return &service{
		repo:   repo,
		tx:     tx,
		logger: elog.DefaultLogger.With(elog.FieldComponent("notification.service")),
	}
}

func (s *service) Emit(ctx context.Context, n domain.Notification) {
	if n.CustomerID <= 0 {
		return
	}
	if n.Type == "" {
		n.Type = domain.TypeInfo
	}
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		_, err := s.repo.Create(ctx, n)
		return err
	})
	if err != nil {
		s.logger.Warn("写入通知失败",
			elog.FieldErr(err),
			elog.Int64("customerID", n.CustomerID),
			elog.String("title", n.Title))
	}
}

func (s *service) List(ctx context.Context, customerID int64, offset, limit int) ([]domain.Notification, error) {
	return s.repo.FindByCustomerID(ctx, customerID, offset, limit)
}
