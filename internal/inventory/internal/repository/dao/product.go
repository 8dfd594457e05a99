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

var ErrRecordNotFound = gorm.ErrRecordNotFound

type ProductDAO interface {
	FindByID(ctx context.Context, id int64) (Product, error)
	// IncrStock 返回受影响的行数, 0 表示商品已经不存在
	IncrStock(ctx context.Context, id int64, delta int64) (int64, error)
}

type productDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &productDAO{db: db}
}

func (d *productDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := gormx.DB(ctx, d.db).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *productDAO) IncrStock(ctx context.Context, id int64, delta int64) (int64, error) {
	// 必须在数据库层面原子自增, 不能先读后写, 否则并发取消同一商品的订单时会丢失更新
	res := gormx.DB(ctx, d.db).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", delta),
			"utime": time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

type Product struct {
	Id    int64  `gorm:"primaryKey;autoIncrement;comment:商品ID"`
	Name  string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Stock int64  `gorm:"not null;default:0;comment:库存数量"`
	Ctime int64
	Utime int64
}
