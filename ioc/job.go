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
	"time"

	"github.com/ecodeclub/fulfillment/internal/order"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cronJobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "fulfillment",
	Subsystem: "cron",
	Name:      "job_duration_seconds",
	Help:      "定时任务耗时",
}, []string{"job", "result"})

func initCronJobs(relayJob *order.RelayOrderEventsJob) []ecron.Ecron {
	return []ecron.Ecron{
		ecron.Load("cron.relay").Build(ecron.WithJob(funcJobWrapper(relayJob))),
	}
}

func funcJobWrapper(job ecron.NamedJob) ecron.FuncJob {
	name := job.Name()
	logger := elog.DefaultLogger.With(elog.String("cronjob", name))
	return func(ctx context.Context) error {
		start := time.Now()
		logger.Debug("开始运行")
		err := job.Run(ctx)
		duration := time.Since(start)
		if err != nil {
			cronJobDuration.WithLabelValues(name, "error").Observe(duration.Seconds())
			logger.Error("执行失败", elog.FieldErr(err))
			return err
		}
		cronJobDuration.WithLabelValues(name, "ok").Observe(duration.Seconds())
		logger.Debug("结束运行", elog.FieldKey("运行时间"), elog.FieldCost(duration))
		return nil
	}
}
