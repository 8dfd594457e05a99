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

package snowflake

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator 生成全局唯一且趋势递增的 ID, 目前用于 outbox 事件 ID
type Generator interface {
	Next() int64
}

type NodeGenerator struct {
	node *snowflake.Node
}

// NewNodeGenerator nodeID 取值范围 [0, 1023], 多实例部署时每个实例必须不同
func NewNodeGenerator(nodeID int64) (*NodeGenerator, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("初始化 snowflake 节点失败: %w", err)
	}
	return &NodeGenerator{node: n}, nil
}

func (g *NodeGenerator) Next() int64 {
	return g.node.Generate().Int64()
}

// NodeOf 解析 ID 所属节点, 排查重复事件时使用
func NodeOf(id int64) int64 {
	return snowflake.ParseInt64(id).Node()
}
