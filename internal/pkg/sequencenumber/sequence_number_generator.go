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

package sequencenumber

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Length 订单号长度: 8 位日期 + 4 位顾客尾号 + 8 位随机串
const Length = 20

type TimeFunc func() time.Time

type RandomFunc func() string

// Generator 生成人类可读的订单号, 例如 20261017 0042 Xk3ZpQ9a
type Generator struct {
	now    TimeFunc
	random RandomFunc
}

func NewGeneratorWith(now TimeFunc, random RandomFunc) *Generator {
	return &Generator{now: now, random: random}
}

func NewGenerator() *Generator {
	return NewGeneratorWith(time.Now, shortuuid.New)
}

// Generate 没有顾客的订单 (例如柜台下单) 传 0 即可
func (g *Generator) Generate(customerID int64) (string, error) {
	if customerID < 0 {
		return "", fmt.Errorf("顾客ID非法: %d", customerID)
	}
	random := g.random()
	if len(random) < 8 {
		return "", fmt.Errorf("随机串长度不足: %q", random)
	}
	var sb strings.Builder
	sb.Grow(Length)
	sb.WriteString(g.now().Format("20060102"))
	sb.WriteString(fmt.Sprintf("%04d", customerID%10000))
	sb.WriteString(random[:8])
	return sb.String(), nil
}
