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

//go:build wireinject

package loyalty

import (
	"context"
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/event"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/cache"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/repository/dao"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/service"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/web"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, q mq.MQ, ec ecache.Cache) (*Module, error) {
	wire.Build(
		InitService,
		web.NewAdminHandler,
		initOrderRevenueConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var (
	once = &sync.Once{}
	svc  service.Service
)

func InitService(db *egorm.Component, ec ecache.Cache) Service {
	once.Do(func() {
		_ = dao.InitTables(db)
		r := repository.NewLoyaltyRepository(dao.NewLoyaltyGORMDAO(db))
		mr := repository.NewTierMultiplierRepository(
			dao.NewTierMultiplierGORMDAO(db),
			cache.NewMultiplierECache(ec))
		svc = service.NewService(r, mr, gormx.NewTransactor(db))
	})
	return svc
}

func initOrderRevenueConsumer(svc service.Service, q mq.MQ) (*event.OrderRevenueConsumer, error) {
	c, err := event.NewOrderRevenueConsumer(svc, q)
	if err != nil {
		return nil, err
	}
	c.Start(context.Background())
	return c, nil
}
