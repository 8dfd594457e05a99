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

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/cache"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/dao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMultiplierDAO struct {
	rows    []dao.TierMultiplier
	findErr error
	finds   int
}

func (f *fakeMultiplierDAO) Upsert(_ context.Context, m dao.TierMultiplier) error {
	for i := range f.rows {
		if f.rows[i].Tier == m.Tier {
			f.rows[i].Multiplier = m.Multiplier
			return nil
		}
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMultiplierDAO) FindAll(_ context.Context) ([]dao.TierMultiplier, error) {
	f.finds++
	return f.rows, f.findErr
}

type fakeMultiplierCache struct {
	val map[string]string
}

func (f *fakeMultiplierCache) Get(_ context.Context) (map[string]string, error) {
	if f.val == nil {
		return nil, cache.ErrMultipliersNotFound
	}
	return f.val, nil
}

func (f *fakeMultiplierCache) Set(_ context.Context, multipliers map[string]string) error {
	f.val = multipliers
	return nil
}

func (f *fakeMultiplierCache) Del(_ context.Context) error {
	f.val = nil
	return nil
}

func TestTierMultiplierRepository_Multipliers(t *testing.T) {
	testCases := []struct {
		name      string
		dao       *fakeMultiplierDAO
		cache     *fakeMultiplierCache
		want      map[domain.Tier]string
		wantFinds int
		wantErr   bool
	}{
		{
			name:      "没有配置_使用默认值",
			dao:       &fakeMultiplierDAO{},
			cache:     &fakeMultiplierCache{},
			want:      map[domain.Tier]string{domain.TierBronze: "1", domain.TierSilver: "1.2", domain.TierGold: "1.5"},
			wantFinds: 1,
		},
		{
			name:      "数据库配置覆盖默认值",
			dao:       &fakeMultiplierDAO{rows: []dao.TierMultiplier{{Tier: "GOLD", Multiplier: "2"}}},
			cache:     &fakeMultiplierCache{},
			want:      map[domain.Tier]string{domain.TierBronze: "1", domain.TierSilver: "1.2", domain.TierGold: "2"},
			wantFinds: 1,
		},
		{
			name:  "命中缓存_不查数据库",
			dao:   &fakeMultiplierDAO{rows: []dao.TierMultiplier{{Tier: "GOLD", Multiplier: "2"}}},
			cache: &fakeMultiplierCache{val: map[string]string{"SILVER": "1.3"}},
			want:  map[domain.Tier]string{domain.TierBronze: "1", domain.TierSilver: "1.3", domain.TierGold: "1.5"},
		},
		{
			name:  "非法配置_忽略",
			dao:   &fakeMultiplierDAO{},
			cache: &fakeMultiplierCache{val: map[string]string{"SILVER": "abc"}},
			want:  map[domain.Tier]string{domain.TierBronze: "1", domain.TierSilver: "1.2", domain.TierGold: "1.5"},
		},
		{
			name:      "数据库错误",
			dao:       &fakeMultiplierDAO{findErr: errors.New("mock db error")},
			cache:     &fakeMultiplierCache{},
			wantFinds: 1,
			wantErr:   true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewTierMultiplierRepository(tc.dao, tc.cache)
			res, err := repo.Multipliers(context.Background())
			assert.Equal(t, tc.wantFinds, tc.dao.finds)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, res, len(tc.want))
			for tier, want := range tc.want {
				assert.True(t, decimal.RequireFromString(want).Equal(res[tier]), "tier=%s got=%s", tier, res[tier])
			}
		})
	}
}

func TestTierMultiplierRepository_Save(t *testing.T) {
	d := &fakeMultiplierDAO{}
	c := &fakeMultiplierCache{}
	repo := NewTierMultiplierRepository(d, c)

	res, err := repo.Multipliers(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(res[domain.TierGold]))
	assert.NotNil(t, c.val)

	err = repo.Save(context.Background(), domain.TierMultiplier{
		Tier:       domain.TierGold,
		Multiplier: decimal.RequireFromString("3"),
	})
	require.NoError(t, err)
	assert.Nil(t, c.val)

	res, err = repo.Multipliers(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3").Equal(res[domain.TierGold]))
	assert.Equal(t, 2, d.finds)
}
