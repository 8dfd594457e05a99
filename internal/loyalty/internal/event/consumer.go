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

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// OrderRevenueConsumer 订单确认收入后补偿积分入账.
// 订单模块提交后会直接入账一次, 这里是兜底, 依赖幂等键去重
type OrderRevenueConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component

	// 入账失败时按指数退避重试
	initialInterval time.Duration
	maxInterval     time.Duration
	maxRetries      int32
}

func NewOrderRevenueConsumer(svc service.Service, q mq.MQ) (*OrderRevenueConsumer, error) {
	groupID := "loyalty"
	consumer, err := q.Consumer(orderEventsTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderRevenueConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("loyalty.consumer")),

		initialInterval: 200 * time.Millisecond,
		maxInterval:     10 * time.Second,
		maxRetries:      8,
	}, nil
}

func (c *OrderRevenueConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单事件失败", elog.FieldErr(err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *OrderRevenueConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt OrderEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	if evt.Type != orderRevenueRecognized || evt.CustomerID <= 0 {
		return nil
	}

	err = c.accrue(ctx, domain.AccrualRequest{
		CustomerID: evt.CustomerID,
		Amount:     evt.Amount,
		OrderID:    evt.OrderID,
		OrderSN:    evt.OrderSN,
		Key:        evt.Key,
	})
	if err != nil {
		return fmt.Errorf("积分入账失败: key=%s: %w", evt.Key, err)
	}
	return nil
}

// accrue 消息已经提交, 这里失败就不会再收到同一条消息, 所以除参数错误外都要重试
func (c *OrderRevenueConsumer) accrue(ctx context.Context, req domain.AccrualRequest) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(c.initialInterval, c.maxInterval, c.maxRetries)
	if err != nil {
		return err
	}
	for {
		_, err = c.svc.Accrue(ctx, req)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, service.ErrDuplicatedAccrual):
			c.logger.Debug("积分已入账", elog.String("key", req.Key))
			return nil
		case errors.Is(err, service.ErrInvalidAccrual):
			return err
		}
		next, ok := strategy.Next()
		if !ok {
			return err
		}
		c.logger.Warn("积分入账失败, 稍后重试",
			elog.FieldErr(err),
			elog.String("key", req.Key),
			elog.String("next", next.String()))
		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}

func (c *OrderRevenueConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
