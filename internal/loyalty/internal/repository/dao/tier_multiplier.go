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
	"gorm.io/gorm/clause"
)

type TierMultiplierDAO interface {
	Upsert(ctx context.Context, m TierMultiplier) error
	FindAll(ctx context.Context) ([]TierMultiplier, error)
}

type tierMultiplierDAO struct {
	db *egorm.Component
}

func NewTierMultiplierGORMDAO(db *egorm.Component) TierMultiplierDAO {
	return &tierMultiplierDAO{db: db}
}

func (d *tierMultiplierDAO) Upsert(ctx context.Context, m TierMultiplier) error {
	now := time.Now().UnixMilli()
	m.Ctime, m.Utime = now, now
	return gormx.DB(ctx, d.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{"multiplier", "utime"}),
	}).Create(&m).Error
}

func (d *tierMultiplierDAO) FindAll(ctx context.Context) ([]TierMultiplier, error) {
	var res []TierMultiplier
	err := gormx.DB(ctx, d.db).Order("id ASC").Find(&res).Error
	return res, err
}

// TierMultiplier 后台配置的等级倍率, 覆盖内置默认值
type TierMultiplier struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:等级倍率自增ID"`
	Tier       string `gorm:"type:varchar(16);not null;uniqueIndex:unq_tier;comment:等级"`
	Multiplier string `gorm:"type:varchar(32);not null;comment:倍率, 十进制字符串"`
	Ctime      int64
	Utime      int64
}
