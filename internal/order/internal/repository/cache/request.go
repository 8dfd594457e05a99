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

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
)

const requestExpiration = 10 * time.Minute

// RequestCache 后台状态变更请求去重
type RequestCache interface {
	// Acquire 返回 false 表示同一个 requestID 已经处理过或者正在处理
	Acquire(ctx context.Context, requestID string) (bool, error)
	// Release 处理失败时释放, 允许调用方重试
	Release(ctx context.Context, requestID string) error
}

type requestECache struct {
	ec ecache.Cache
}

func NewRequestECache(ec ecache.Cache) RequestCache {
	return &requestECache{
		ec: &ecache.NamespaceCache{
			Namespace: "order:",
			C:         ec,
		},
	}
}

func (c *requestECache) Acquire(ctx context.Context, requestID string) (bool, error) {
	return c.ec.SetNX(ctx, c.key(requestID), time.Now().UnixMilli(), requestExpiration)
}

func (c *requestECache) Release(ctx context.Context, requestID string) error {
	_, err := c.ec.Delete(ctx, c.key(requestID))
	return err
}

func (c *requestECache) key(requestID string) string {
	return fmt.Sprintf("transition:request:%s", requestID)
}
