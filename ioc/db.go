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

package ioc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/fulfillment/internal/pkg/database"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	// WaitForDBSetup 直接使用 database/sql
	_ "github.com/go-sql-driver/mysql"
)

func InitDB() *egorm.Component {
	WaitForDBSetup(econf.GetString("mysql.dsn"))
	db := egorm.Load("mysql").Build()
	if err := db.Use(database.NewGormTracingPlugin()); err != nil {
		panic(err)
	}
	return db
}

// WaitForDBSetup 容器编排时 MySQL 往往比服务晚就绪, 按指数退避等待, 超过重试次数直接 panic
func WaitForDBSetup(dsn string) {
	if err := waitForDB(dsn, 10); err != nil {
		panic(err)
	}
}

func waitForDB(dsn string, maxRetries int32) error {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("打开数据库连接失败: %w", err)
	}
	defer sqlDB.Close()

	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, 10*time.Second, maxRetries)
	if err != nil {
		return err
	}
	for {
		if err = ping(sqlDB); err == nil {
			return nil
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("等待数据库就绪超过重试次数: %w", err)
		}
		elog.DefaultLogger.Warn("等待数据库就绪", elog.FieldErr(err), elog.String("next", next.String()))
		time.Sleep(next)
	}
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
