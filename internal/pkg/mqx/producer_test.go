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
	"testing"
	"time"

	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicProducer_Produce(t *testing.T) {
	const topic = "order_events"
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), topic, 1))
	consumer, err := q.Consumer(topic, "test")
	require.NoError(t, err)

	p := NewTopicProducer(q)
	defer func() {
		assert.NoError(t, p.Close())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, p.Produce(ctx, topic, "order:1:v2", []byte(`{"orderId":1}`)))
	// 第二次发送复用同一个 producer
	require.NoError(t, p.Produce(ctx, topic, "order:2:v2", []byte(`{"orderId":2}`)))
	assert.Len(t, p.producers, 1)

	msg, err := consumer.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "order:1:v2", string(msg.Key))
	assert.JSONEq(t, `{"orderId":1}`, string(msg.Value))
}
