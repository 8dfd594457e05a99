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

package dao

import (
	"context"
	"time"

	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ego-component/egorm"
)

type NotificationDAO interface {
	Insert(ctx context.Context, n Notification) (int64, error)
	FindByCustomerID(ctx context.Context, customerID int64, offset, limit int) ([]Notification, error)
}

type notificationDAO struct {
	db *egorm.Component
}

func NewNotificationGORMDAO(db *egorm.Component) NotificationDAO {
	return &notificationDAO{db: db}
}

func (d *notificationDAO) Insert(ctx context.Context, n Notification) (int64, error) {
	n.Ctime = time.Now().UnixMilli()
	err := gormx.DB(ctx, d.db).Create(&n).Error
	return n.Id, err
}

func (d *notificationDAO) FindByCustomerID(ctx context.Context, customerID int64, offset, limit int) ([]Notification, error) {
	var res []Notification
	err := gormx.DB(ctx, d.db).Where("customer_id = ?", customerID).
		Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

type Notification struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:通知自增ID"`
	CustomerId int64  `gorm:"not null;index:idx_customer_id;comment:顾客ID"`
	Title      string `gorm:"type:varchar(256);not null;comment:标题"`
	Message    string `gorm:"type:varchar(1024);not null;comment:内容"`
	Type       string `gorm:"type:varchar(32);not null;comment:info/success/warning/error"`
	IsRead     bool   `gorm:"not null;default:false;comment:是否已读"`
	Ctime      int64
}
