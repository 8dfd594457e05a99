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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
)

var ErrMultipliersNotFound = errors.New("等级倍率缓存不存在")

const multiplierExpiration = 30 * time.Minute

// MultiplierCache 缓存后台配置的等级倍率, 值为 tier -> 十进制字符串
type MultiplierCache interface {
	Get(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, multipliers map[string]string) error
	Del(ctx context.Context) error
}

type multiplierECache struct {
	ec ecache.Cache
}

func NewMultiplierECache(ec ecache.Cache) MultiplierCache {
	return &multiplierECache{
		ec: &ecache.NamespaceCache{
			Namespace: "loyalty:",
			C:         ec,
		},
	}
}

func (c *multiplierECache) Get(ctx context.Context) (map[string]string, error) {
	val := c.ec.Get(ctx, c.key())
	if val.KeyNotFound() {
		return nil, ErrMultipliersNotFound
	}
	if val.Err != nil {
		return nil, val.Err
	}
	str, err := val.String()
	if err != nil {
		return nil, err
	}
	var res map[string]string
	if err = json.Unmarshal([]byte(str), &res); err != nil {
		return nil, fmt.Errorf("反序列化等级倍率失败: %w", err)
	}
	return res, nil
}

func (c *multiplierECache) Set(ctx context.Context, multipliers map[string]string) error {
	data, err := json.Marshal(multipliers)
	if err != nil {
		return fmt.Errorf("序列化等级倍率失败: %w", err)
	}
	return c.ec.Set(ctx, c.key(), string(data), multiplierExpiration)
}

func (c *multiplierECache) Del(ctx context.Context) error {
	_, err := c.ec.Delete(ctx, c.key())
	return err
}

func (c *multiplierECache) key() string {
	return "multipliers"
}
