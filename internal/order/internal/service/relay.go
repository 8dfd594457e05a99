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

package service

import (
	"context"
	"fmt"

	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/event"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// RelayService 把本地消息表中未发送的事件投递到消息队列
type RelayService interface {
	// Relay 投递一批事件, 返回成功的数量
	Relay(ctx context.Context, limit int) (int, error)
}

type relayService struct {
	events      repository.OrderEventRepository
	producer    event.Producer
	maxAttempts int64
	logger      *elog.Component
}

// NewRelayService maxAttempts 小于等于 0 时不限制重试次数
func NewRelayService(events repository.OrderEventRepository, producer event.Producer, maxAttempts int64) RelayService {
	return &relayService{
		events:      events,
		producer:    producer,
		maxAttempts: maxAttempts,
		logger:      elog.DefaultLogger.With(elog.FieldComponent("order.relay")),
	}
}

func (s *relayService) Relay(ctx context.Context, limit int) (int, error) {
	evts, err := s.events.FindPending(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("查询待发送事件失败: %w", err)
	}
	sent := make([]int64, 0, len(evts))
	for _, evt := range evts {
		if err = s.producer.Produce(ctx, evt.Topic, evt.Key, evt.Payload); err != nil {
			s.logger.Warn("投递订单事件失败",
				elog.FieldErr(err),
				elog.String("key", evt.Key),
				elog.Int64("attempts", evt.Attempts+1))
			s.fail(ctx, evt)
			continue
		}
		sent = append(sent, evt.ID)
	}
	if err = s.events.MarkSent(ctx, sent); err != nil {
		// 下次会重复投递, 由消费方去重
		return 0, fmt.Errorf("标记事件已发送失败: %w", err)
	}
	return len(sent), nil
}

func (s *relayService) fail(ctx context.Context, evt domain.OutboxEvent) {
	var err error
	if s.maxAttempts > 0 && evt.Attempts+1 >= s.maxAttempts {
		s.logger.Error("订单事件多次投递失败, 停止重试",
			elog.String("key", evt.Key),
			elog.Int64("id", evt.ID),
			elog.Int64("attempts", evt.Attempts+1))
		err = s.events.MarkFailed(ctx, evt.ID)
	} else {
		err = s.events.IncrAttempts(ctx, evt.ID)
	}
	if err != nil {
		s.logger.Error("记录投递失败次数失败", elog.FieldErr(err), elog.Int64("id", evt.ID))
	}
}
