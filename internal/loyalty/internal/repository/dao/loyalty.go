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
	"errors"
	"time"

	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound             = gorm.ErrRecordNotFound
	ErrDuplicatedPointTransaction = errors.New("积分流水重复")
)

// AccountDelta 积分主记录的增量, 全部由数据库原子累加
type AccountDelta struct {
	Points        int64
	TotalSpent    int64
	OrderCount    int64
	Tier          string
	LastOrderDate int64
}

type LoyaltyDAO interface {
	FindAccount(ctx context.Context, customerID int64) (LoyaltyAccount, error)
	// LockOrCreateAccount 锁定顾客的积分主记录, 不存在时先创建. 必须在事务中调用
	LockOrCreateAccount(ctx context.Context, customerID int64, tier string) (LoyaltyAccount, error)
	InsertPointTransaction(ctx context.Context, t PointTransaction) (int64, error)
	IncrAccount(ctx context.Context, customerID int64, delta AccountDelta) error
	// DecrPoints 扣减积分, 余额不足时返回 false
	DecrPoints(ctx context.Context, customerID int64, points int64) (bool, error)
	FindPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]PointTransaction, error)
}

type loyaltyDAO struct {
	db *egorm.Component
}

func NewLoyaltyGORMDAO(db *egorm.Component) LoyaltyDAO {
	return &loyaltyDAO{db: db}
}

func (d *loyaltyDAO) FindAccount(ctx context.Context, customerID int64) (LoyaltyAccount, error) {
	var res LoyaltyAccount
	err := gormx.DB(ctx, d.db).Where("customer_id = ?", customerID).First(&res).Error
	return res, err
}

func (d *loyaltyDAO) LockOrCreateAccount(ctx context.Context, customerID int64, tier string) (LoyaltyAccount, error) {
	db := gormx.DB(ctx, d.db)
	var res LoyaltyAccount
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).First(&res).Error
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return res, err
	}
	now := time.Now().UnixMilli()
	// 并发创建时以先插入的为准
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&LoyaltyAccount{
		CustomerId: customerID,
		Tier:       tier,
		Version:    1,
		Ctime:      now,
		Utime:      now,
	}).Error
	if err != nil {
		return LoyaltyAccount{}, err
	}
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).First(&res).Error
	return res, err
}

func (d *loyaltyDAO) InsertPointTransaction(ctx context.Context, t PointTransaction) (int64, error) {
	t.Ctime = time.Now().UnixMilli()
	err := gormx.DB(ctx, d.db).Create(&t).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				return 0, ErrDuplicatedPointTransaction
			}
		}
		return 0, err
	}
	return t.Id, nil
}

func (d *loyaltyDAO) IncrAccount(ctx context.Context, customerID int64, delta AccountDelta) error {
	updates := map[string]any{
		"points":      gorm.Expr("points + ?", delta.Points),
		"total_spent": gorm.Expr("total_spent + ?", delta.TotalSpent),
		"order_count": gorm.Expr("order_count + ?", delta.OrderCount),
		"version":     gorm.Expr("version + 1"),
		"utime":       time.Now().UnixMilli(),
	}
	if delta.Tier != "" {
		updates["tier"] = delta.Tier
	}
	if delta.LastOrderDate > 0 {
		updates["last_order_date"] = delta.LastOrderDate
	}
	res := gormx.DB(ctx, d.db).Model(&LoyaltyAccount{}).
		Where("customer_id = ?", customerID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *loyaltyDAO) DecrPoints(ctx context.Context, customerID int64, points int64) (bool, error) {
	res := gormx.DB(ctx, d.db).Model(&LoyaltyAccount{}).
		Where("customer_id = ? AND points >= ?", customerID, points).
		Updates(map[string]any{
			"points":  gorm.Expr("points - ?", points),
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		})
	return res.RowsAffected > 0, res.Error
}

func (d *loyaltyDAO) FindPointTransactions(ctx context.Context, customerID int64, offset, limit int) ([]PointTransaction, error) {
	var res []PointTransaction
	err := gormx.DB(ctx, d.db).Where("customer_id = ?", customerID).
		Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

// LoyaltyAccount 每个顾客只有一条记录
type LoyaltyAccount struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:积分主表自增ID"`
	CustomerId    int64  `gorm:"not null;uniqueIndex:unq_customer_id;comment:顾客ID"`
	Points        int64  `gorm:"not null;default:0;comment:可用积分"`
	Tier          string `gorm:"type:varchar(16);not null;default:'BRONZE';comment:等级"`
	TotalSpent    int64  `gorm:"not null;default:0;comment:累计消费, 只增不减"`
	OrderCount    int64  `gorm:"not null;default:0;comment:累计订单数"`
	LastOrderDate int64  `gorm:"not null;default:0;comment:最近下单时间"`
	Version       int64  `gorm:"not null;default:1;comment:版本号"`
	Ctime         int64
	Utime         int64
}

type PointTransaction struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:积分流水自增ID"`
	CustomerId  int64  `gorm:"not null;index:idx_customer_id;comment:顾客ID"`
	Key         string `gorm:"type:varchar(256);not null;uniqueIndex:unq_key;comment:去重key"`
	Amount      int64  `gorm:"not null;comment:积分变动, 正数增加负数减少"`
	Description string `gorm:"type:varchar(512);not null;default:'';comment:积分流水描述"`
	Type        string `gorm:"type:varchar(16);not null;comment:EARNED/SPENT/ADJUSTED"`
	Ctime       int64
}
