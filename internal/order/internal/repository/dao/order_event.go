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
	"gorm.io/gorm"
)

const (
	OrderEventStatusPending uint8 = 1
	OrderEventStatusSent    uint8 = 2
	// OrderEventStatusFailed 多次投递失败, 不再自动重试
	OrderEventStatusFailed uint8 = 3
)

// OrderEventDAO 本地消息表, 与订单状态在同一个事务中写入
type OrderEventDAO interface {
	Insert(ctx context.Context, evt OrderEvent) error
	FindPending(ctx context.Context, limit int) ([]OrderEvent, error)
	MarkSent(ctx context.Context, ids []int64) error
	IncrAttempts(ctx context.Context, id int64) error
	// MarkFailed 记录最后一次失败并停止重试
	MarkFailed(ctx context.Context, id int64) error
}

type orderEventDAO struct {
	db *egorm.Component
}

func NewOrderEventGORMDAO(db *egorm.Component) OrderEventDAO {
	return &orderEventDAO{db: db}
}

func (d *orderEventDAO) Insert(ctx context.Context, evt OrderEvent) error {
	now := time.Now().UnixMilli()
	evt.Status = OrderEventStatusPending
	evt.Ctime, evt.Utime = now, now
	return gormx.DB(ctx, d.db).Create(&evt).Error
}

func (d *orderEventDAO) FindPending(ctx context.Context, limit int) ([]OrderEvent, error) {
	var res []OrderEvent
	// 失败次数少的优先, 持续失败的事件不会占满整批
	err := gormx.DB(ctx, d.db).Where("status = ?", OrderEventStatusPending).
		Order("attempts ASC, id ASC").Limit(limit).Find(&res).Error
	return res, err
}

func (d *orderEventDAO) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return gormx.DB(ctx, d.db).Model(&OrderEvent{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status": OrderEventStatusSent,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (d *orderEventDAO) IncrAttempts(ctx context.Context, id int64) error {
	return gormx.DB(ctx, d.db).Model(&OrderEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts": gorm.Expr("attempts + 1"),
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *orderEventDAO) MarkFailed(ctx context.Context, id int64) error {
	return gormx.DB(ctx, d.db).Model(&OrderEvent{}).
		Where("id = ? AND status = ?", id, OrderEventStatusPending).
		Updates(map[string]any{
			"attempts": gorm.Expr("attempts + 1"),
			"status":   OrderEventStatusFailed,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

type OrderEvent struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:本地消息自增ID"`
	EventId  int64  `gorm:"not null;uniqueIndex:uniq_event_id;comment:事件ID, snowflake"`
	Topic    string `gorm:"type:varchar(128);not null;comment:目标topic"`
	Key      string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_key;comment:幂等键"`
	Payload  string `gorm:"type:text;not null;comment:消息体JSON"`
	Status   uint8  `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status_attempts,priority:1;comment:1=待发送 2=已发送 3=发送失败"`
	Attempts int64  `gorm:"not null;default:0;index:idx_status_attempts,priority:2;comment:发送失败次数"`
	Ctime    int64
	Utime    int64
}
