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

package mqx

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecodeclub/mq-api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ecodeclub/fulfillment/internal/pkg/mqx"

// TopicProducer 按 topic 懒加载并复用 producer, 发送已经序列化好的消息.
// outbox 中的事件在写入时就已经完成序列化, 所以这里不关心消息类型
type TopicProducer struct {
	q         mq.MQ
	tracer    trace.Tracer
	mu        sync.Mutex
	producers map[string]mq.Producer
}

func NewTopicProducer(q mq.MQ) *TopicProducer {
	return &TopicProducer{
		q:         q,
		tracer:    otel.GetTracerProvider().Tracer(instrumentationName),
		producers: make(map[string]mq.Producer),
	}
}

func (p *TopicProducer) Produce(ctx context.Context, topic, key string, value []byte) error {
	ctx, span := p.tracer.Start(ctx, "mq.produce", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.operation", "produce"),
		attribute.String("messaging.topic", topic),
		attribute.Int("messaging.message_length", len(value)),
	)

	producer, err := p.producer(topic)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	_, err = producer.Produce(ctx, &mq.Message{
		Key:   []byte(key),
		Value: value,
		Topic: topic,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("向topic=%s发送消息key=%s失败: %w", topic, key, err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (p *TopicProducer) producer(topic string) (mq.Producer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if producer, ok := p.producers[topic]; ok {
		return producer, nil
	}
	producer, err := p.q.Producer(topic)
	if err != nil {
		return nil, fmt.Errorf("创建topic=%s的producer失败: %w", topic, err)
	}
	p.producers[topic] = producer
	return producer, nil
}

func (p *TopicProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for topic, producer := range p.producers {
		if err := producer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.producers, topic)
	}
	return firstErr
}
