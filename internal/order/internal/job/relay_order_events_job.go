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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/fulfillment/internal/order/internal/service"
)

type RelayOrderEventsJob struct {
	svc     service.RelayService
	limit   int
	timeout time.Duration
}

func NewRelayOrderEventsJob(svc service.RelayService, limit int, timeout time.Duration) *RelayOrderEventsJob {
	return &RelayOrderEventsJob{svc: svc, limit: limit, timeout: timeout}
}

func (j *RelayOrderEventsJob) Name() string {
	return "RelayOrderEventsJob"
}

func (j *RelayOrderEventsJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	for {
		n, err := j.svc.Relay(ctx, j.limit)
		if err != nil {
			return fmt.Errorf("投递订单事件失败: %w", err)
		}
		// 有失败的事件时也结束本轮, 留给下一次调度重试
		if n < j.limit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
