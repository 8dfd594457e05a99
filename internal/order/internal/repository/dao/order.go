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
	"gorm.io/gorm/clause"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type OrderDAO interface {
	Create(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindByID(ctx context.Context, id int64) (Order, error)
	// FindByIDForUpdate 加行锁读取订单, 必须在事务中调用
	FindByIDForUpdate(ctx context.Context, id int64) (Order, error)
	FindBySN(ctx context.Context, sn string) (Order, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error)
	// CompareAndSwapStatus 仅当版本号未变化时更新状态, 同时版本号加一
	CompareAndSwapStatus(ctx context.Context, id, version int64, status string) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int, status string) ([]Order, error)
	Count(ctx context.Context, status string) (int64, error)
}

type orderDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &orderDAO{db: db}
}

func (d *orderDAO) Create(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	var id int64
	err := gormx.DB(ctx, d.db).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Version = 1
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		id = o.Id
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderId = id
			items[i].Ctime, items[i].Utime = now, now
		}
		return tx.Create(&items).Error
	})
	return id, err
}

func (d *orderDAO) FindByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := gormx.DB(ctx, d.db).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *orderDAO) FindByIDForUpdate(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := gormx.DB(ctx, d.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *orderDAO) FindBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := gormx.DB(ctx, d.db).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *orderDAO) FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error) {
	var res []OrderItem
	if len(orderIDs) == 0 {
		return res, nil
	}
	err := gormx.DB(ctx, d.db).Where("order_id IN ?", orderIDs).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *orderDAO) CompareAndSwapStatus(ctx context.Context, id, version int64, status string) (bool, error) {
	res := gormx.DB(ctx, d.db).Model(&Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":  status,
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		})
	return res.RowsAffected > 0, res.Error
}

func (d *orderDAO) Delete(ctx context.Context, id int64) error {
	return gormx.DB(ctx, d.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

func (d *orderDAO) List(ctx context.Context, offset, limit int, status string) ([]Order, error) {
	var res []Order
	db := gormx.DB(ctx, d.db)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *orderDAO) Count(ctx context.Context, status string) (int64, error) {
	var res int64
	db := gormx.DB(ctx, d.db).Model(&Order{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Count(&res).Error
	return res, err
}

type Order struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN          string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	Kind        string `gorm:"type:varchar(16);not null;default:'SHOP';comment:订单类型 SHOP/LEGACY"`
	Status      string `gorm:"type:varchar(16);not null;index:idx_status;comment:订单状态"`
	Version     int64  `gorm:"not null;default:1;comment:版本号, 每次修改状态加一"`
	Source      string `gorm:"type:varchar(64);not null;default:'';comment:订单来源"`
	CustomerId  int64  `gorm:"not null;default:0;index:idx_customer_id;comment:顾客ID, 0表示散客"`
	Subtotal    int64  `gorm:"not null;comment:商品小计"`
	ShippingFee int64  `gorm:"not null;default:0;comment:运费"`
	ServiceFee  int64  `gorm:"not null;default:0;comment:服务费"`
	Discount    int64  `gorm:"not null;default:0;comment:优惠"`
	GrandTotal  int64  `gorm:"not null;comment:应付总额"`
	Ctime       int64
	Utime       int64
}

type OrderItem struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId     int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId   int64  `gorm:"not null;default:0;comment:商品ID, 0表示不关联商品"`
	ProductName string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Qty         int64  `gorm:"not null;comment:数量"`
	Unit        string `gorm:"type:varchar(32);not null;default:'';comment:单位"`
	Price       int64  `gorm:"not null;comment:单价"`
	Ctime       int64
	Utime       int64
}
