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

package notification

import (
	"sync"

	"github.com/ecodeclub/fulfillment/internal/notification/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/notification/internal/repository/dao"
	"github.com/ecodeclub/fulfillment/internal/notification/internal/service"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component) *Module {
	wire.Build(InitService, wire.Struct(new(Module), "*"))
	return new(Module)
}

var (
	once = &sync.Once{}
	svc  service.Service
)

func InitService(db *egorm.Component) Service {
	once.Do(func() {
		_ = dao.InitTables(db)
		d := dao.NewNotificationGORMDAO(db)
		r := repository.NewNotificationRepository(d)
		svc = service.NewService(r, gormx.NewTransactor(db))
	})
	return svc
}
