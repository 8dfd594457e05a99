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

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsBuilder 统计管理后台接口的耗时与调用次数
type MetricsBuilder struct {
	durationVec *prometheus.SummaryVec
	counterVec  *prometheus.CounterVec
}

func NewMetricsBuilder(namespace string, reg prometheus.Registerer) *MetricsBuilder {
	durationVec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status_code"},
	)
	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	reg.MustRegister(durationVec, counterVec)
	return &MetricsBuilder{
		durationVec: durationVec,
		counterVec:  counterVec,
	}
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		// 未命中路由时用原始路径, 命中时用路由模板, 避免 label 爆炸
		path := ctx.FullPath()
		if path == "" {
			path = "unknown"
		}
		statusCode := strconv.Itoa(ctx.Writer.Status())
		b.durationVec.WithLabelValues(ctx.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		b.counterVec.WithLabelValues(ctx.Request.Method, path, statusCode).Inc()
	}
}
