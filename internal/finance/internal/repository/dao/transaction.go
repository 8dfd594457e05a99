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

// TransactionDAO 财务流水只允许追加, 不提供修改和删除
type TransactionDAO interface {
	Insert(ctx context.Context, txns []FinancialTransaction) error
	FindByOrderID(ctx context.Context, orderID int64) ([]FinancialTransaction, error)
}

type transactionDAO struct {
	db *egorm.Component
}

func NewTransactionGORMDAO(db *egorm.Component) TransactionDAO {
	return &transactionDAO{db: db}
}

func (d *transactionDAO) Insert(ctx context.Context, txns []FinancialTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	for i := range txns {
		txns[i].Ctime = now
		if txns[i].Date == 0 {
			txns[i].Date = now
		}
	}
	return gormx.DB(ctx, d.db).Create(&txns).Error
}

func (d *transactionDAO) FindByOrderID(ctx context.Context, orderID int64) ([]FinancialTransaction, error) {
	var res []FinancialTransaction
	err := gormx.DB(ctx, d.db).Where("order_id = ?", orderID).Order("id ASC").Find(&res).Error
	return res, err
}

type FinancialTransaction struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:财务流水自增ID"`
	Type        uint8  `gorm:"type:tinyint unsigned;not null;comment:类型 1=收入 2=支出"`
	Amount      int64  `gorm:"not null;comment:金额, 非负"`
	Category    string `gorm:"type:varchar(64);not null;comment:分类"`
	Description string `gorm:"type:varchar(512);not null;default:'';comment:描述"`
	OrderId     int64  `gorm:"not null;index:idx_order_id;comment:关联订单ID, 0表示无"`
	Date        int64  `gorm:"not null;index:idx_date;comment:记账时间"`
	Ctime       int64
}
