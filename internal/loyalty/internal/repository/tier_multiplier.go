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
	"fmt"

	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/cache"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"github.com/shopspring/decimal"
)

type TierMultiplierRepository interface {
	// Multipliers 内置默认值叠加后台配置
	Multipliers(ctx context.Context) (map[domain.Tier]decimal.Decimal, error)
	Save(ctx context.Context, m domain.TierMultiplier) error
}

type tierMultiplierRepository struct {
	dao    dao.TierMultiplierDAO
	cache  cache.MultiplierCache
	logger *elog.Component
}

func NewTierMultiplierRepository(d dao.TierMultiplierDAO, c cache.MultiplierCache) TierMultiplierRepository {
	return &tierMultiplierRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger.With(elog.FieldComponent("loyalty.multiplier")),
	}
}

func (r *tierMultiplierRepository) Multipliers(ctx context.Context) (map[domain.Tier]decimal.Decimal, error) {
	overrides, err := r.cache.Get(ctx)
	if err != nil {
		overrides, err = r.loadOverrides(ctx)
		if err != nil {
			return nil, err
		}
		if er := r.cache.Set(ctx, overrides); er != nil {
			r.logger.Warn("回写等级倍率缓存失败", elog.FieldErr(er))
		}
	}
	res := domain.DefaultMultipliers()
	for tier, val := range overrides {
		m, er := decimal.NewFromString(val)
		if er != nil {
			r.logger.Error("等级倍率格式错误", elog.FieldErr(er), elog.String("tier", tier), elog.String("val", val))
			continue
		}
		res[domain.Tier(tier)] = m
	}
	return res, nil
}

func (r *tierMultiplierRepository) loadOverrides(ctx context.Context) (map[string]string, error) {
	ms, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询等级倍率失败: %w", err)
	}
	res := make(map[string]string, len(ms))
	for _, m := range ms {
		res[m.Tier] = m.Multiplier
	}
	return res, nil
}

func (r *tierMultiplierRepository) Save(ctx context.Context, m domain.TierMultiplier) error {
	err := r.dao.Upsert(ctx, dao.TierMultiplier{
		Tier:       m.Tier.String(),
		Multiplier: m.Multiplier.String(),
	})
	if err != nil {
		return err
	}
	if er := r.cache.Del(ctx); er != nil {
		r.logger.Warn("删除等级倍率缓存失败", elog.FieldErr(er))
	}
	return nil
}
