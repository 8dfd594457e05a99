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

package order

import (
	"sync"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/fulfillment/internal/finance"
	"github.com/ecodeclub/fulfillment/internal/inventory"
	"github.com/ecodeclub/fulfillment/internal/loyalty"
	"github.com/ecodeclub/fulfillment/internal/notification"
	"github.com/ecodeclub/fulfillment/internal/order/internal/event"
	"github.com/ecodeclub/fulfillment/internal/order/internal/job"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository/cache"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository/dao"
	"github.com/ecodeclub/fulfillment/internal/order/internal/service"
	"github.com/ecodeclub/fulfillment/internal/order/internal/web"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ecodeclub/fulfillment/internal/pkg/mqx"
	"github.com/ecodeclub/fulfillment/internal/pkg/sequencenumber"
	"github.com/ecodeclub/fulfillment/internal/pkg/snowflake"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var repositorySet = wire.NewSet(
	initTablesOnce,
	repository.NewOrderRepository,
	dao.NewOrderEventGORMDAO,
	repository.NewOrderEventRepository,
)

func InitModule(db *egorm.Component,
	q mq.MQ,
	ec ecache.Cache,
	inventoryModule *inventory.Module,
	financeModule *finance.Module,
	noticeModule *notification.Module,
	loyaltyModule *loyalty.Module,
	idGen snowflake.Generator) (*Module, error) {
	wire.Build(
		repositorySet,
		sequencenumber.NewGenerator,
		service.NewService,
		gormx.NewTransactor,
		wire.Bind(new(gormx.Transactor), new(*gormx.GormTransactor)),
		wire.FieldsOf(new(*inventory.Module), "Svc"),
		wire.FieldsOf(new(*finance.Module), "Svc"),
		wire.FieldsOf(new(*notification.Module), "Svc"),
		wire.FieldsOf(new(*loyalty.Module), "Svc"),
		service.NewFulfillmentService,
		mqx.NewTopicProducer,
		wire.Bind(new(event.Producer), new(*mqx.TopicProducer)),
		initRelayService,
		initRelayOrderEventsJob,
		cache.NewRequestECache,
		web.NewAdminHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func initTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

type RelayConfig struct {
	Limit   int           `yaml:"limit"`
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts 投递失败达到该次数后不再重试, 需要人工介入
	MaxAttempts int64 `yaml:"maxAttempts"`
}

func relayConfig() RelayConfig {
	cfg := RelayConfig{Limit: 100, Timeout: 30 * time.Second, MaxAttempts: 16}
	_ = econf.UnmarshalKey("order.relay", &cfg)
	return cfg
}

func initRelayService(events repository.OrderEventRepository, producer event.Producer) service.RelayService {
	return service.NewRelayService(events, producer, relayConfig().MaxAttempts)
}

func initRelayOrderEventsJob(svc service.RelayService) *job.RelayOrderEventsJob {
	cfg := relayConfig()
	return job.NewRelayOrderEventsJob(svc, cfg.Limit, cfg.Timeout)
}
