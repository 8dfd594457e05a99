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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	testCases := []struct {
		name       string
		totalSpent int64
		want       Tier
	}{
		{name: "零消费", totalSpent: 0, want: TierBronze},
		{name: "低于白银", totalSpent: 999_999, want: TierBronze},
		{name: "刚好白银", totalSpent: 1_000_000, want: TierSilver},
		{name: "低于黄金", totalSpent: 4_999_999, want: TierSilver},
		{name: "刚好黄金", totalSpent: 5_000_000, want: TierGold},
		{name: "超过黄金", totalSpent: 80_000_000, want: TierGold},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TierFor(tc.totalSpent))
		})
	}
}

func TestPointsFor(t *testing.T) {
	m := DefaultMultipliers()
	testCases := []struct {
		name       string
		amount     int64
		multiplier decimal.Decimal
		want       int64
	}{
		{name: "青铜", amount: 110000, multiplier: m[TierBronze], want: 11},
		{name: "不足一个单位", amount: 9999, multiplier: m[TierBronze], want: 0},
		{name: "白银_向下取整", amount: 110000, multiplier: m[TierSilver], want: 13},
		{name: "黄金", amount: 110000, multiplier: m[TierGold], want: 16},
		{name: "先取整再乘倍率", amount: 19999, multiplier: m[TierGold], want: 1},
		{name: "白银_整数结果", amount: 50000, multiplier: m[TierSilver], want: 6},
		{name: "金额为0", amount: 0, multiplier: m[TierGold], want: 0},
		{name: "负数金额", amount: -50000, multiplier: m[TierGold], want: 0},
		{name: "负数倍率", amount: 50000, multiplier: decimal.NewFromInt(-1), want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PointsFor(tc.amount, tc.multiplier))
		})
	}
}

func TestTier_IsValid(t *testing.T) {
	assert.True(t, TierBronze.IsValid())
	assert.True(t, TierSilver.IsValid())
	assert.True(t, TierGold.IsValid())
	assert.False(t, Tier("PLATINUM").IsValid())
	assert.False(t, Tier("").IsValid())
}
