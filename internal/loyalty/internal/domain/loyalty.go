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

package domain

import (
	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
)

const (
	// PointUnit 每消费 PointUnit 获得 1 个基础积分
	PointUnit int64 = 10000

	SilverThreshold int64 = 1_000_000
	GoldThreshold   int64 = 5_000_000
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold:
		return true
	default:
		return false
	}
}

// TierFor 根据累计消费计算等级
func TierFor(totalSpent int64) Tier {
	switch {
	case totalSpent >= GoldThreshold:
		return TierGold
	case totalSpent >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// DefaultMultipliers 内置的等级倍率, 可以被后台配置覆盖
func DefaultMultipliers() map[Tier]decimal.Decimal {
	return map[Tier]decimal.Decimal{
		TierBronze: decimal.NewFromInt(1),
		TierSilver: decimal.RequireFromString("1.2"),
		TierGold:   decimal.RequireFromString("1.5"),
	}
}

// PointsFor floor(floor(amount/PointUnit) × multiplier)
func PointsFor(amount int64, multiplier decimal.Decimal) int64 {
	if amount <= 0 || multiplier.IsNegative() {
		return 0
	}
	base := decimal.NewFromInt(amount / PointUnit)
	return base.Mul(multiplier).Floor().IntPart()
}

type TierMultiplier struct {
	Tier       Tier
	Multiplier decimal.Decimal
}

type Account struct {
	CustomerID    int64
	Points        int64
	Tier          Tier
	TotalSpent    int64
	OrderCount    int64
	LastOrderDate int64
	Version       int64
}

type PointTransactionType string

const (
	PointTransactionTypeEarned   PointTransactionType = "EARNED"
	PointTransactionTypeSpent    PointTransactionType = "SPENT"
	PointTransactionTypeAdjusted PointTransactionType = "ADJUSTED"
)

func (p PointTransactionType) String() string {
	return string(p)
}

type PointTransaction struct {
	ID         int64
	CustomerID int64
	// Key 幂等键, 同一个 Key 只会入账一次
	Key         string
	Amount      int64
	Description string
	Type        PointTransactionType
	Ctime       int64
}

type AccrualRequest struct {
	CustomerID int64
	Amount     int64
	OrderID    int64
	OrderSN    string
	Key        string
}

type Accrual struct {
	PointsEarned int64
	Tier         Tier
	// Points 入账后的积分余额
	Points int64
}
