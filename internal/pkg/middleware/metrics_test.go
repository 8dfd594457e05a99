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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsBuilder_Build(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	builder := NewMetricsBuilder("fulfillment", reg)

	server := gin.New()
	server.Use(builder.Build())
	server.POST("/order/transition", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	testCases := []struct {
		name       string
		path       string
		wantLabels []string
	}{
		{
			name:       "命中路由",
			path:       "/order/transition",
			wantLabels: []string{http.MethodPost, "/order/transition", "200"},
		},
		{
			name:       "未命中路由",
			path:       "/order/not-exist",
			wantLabels: []string{http.MethodPost, "unknown", "404"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, nil)
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			assert.Equal(t, float64(1), testutil.ToFloat64(builder.counterVec.WithLabelValues(tc.wantLabels...)))
		})
	}
}
