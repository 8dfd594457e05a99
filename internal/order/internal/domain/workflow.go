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

package domain

import "slices"

// Workflow 描述一种订单类型可以到达的状态
type Workflow struct {
	Kind     Kind
	Statuses []Status
	// Revenue 到达该状态时确认收入并发放积分
	Revenue  Status
	Terminal []Status
}

var workflows = map[Kind]Workflow{
	KindShop: {
		Kind: KindShop,
		Statuses: []Status{
			StatusPending, StatusConfirmed, StatusPreparing,
			StatusShipping, StatusDelivered, StatusCancelled,
		},
		Revenue:  StatusDelivered,
		Terminal: []Status{StatusDelivered, StatusCancelled},
	},
	KindLegacy: {
		Kind:     KindLegacy,
		Statuses: []Status{StatusPending, StatusPaid, StatusCancelled},
		Revenue:  StatusPaid,
		Terminal: []Status{StatusPaid, StatusCancelled},
	},
}

func WorkflowOf(kind Kind) (Workflow, bool) {
	w, ok := workflows[kind]
	return w, ok
}

func (w Workflow) Recognizes(s Status) bool {
	return slices.Contains(w.Statuses, s)
}

func (w Workflow) IsRevenue(s Status) bool {
	return s == w.Revenue
}

func (w Workflow) IsTerminal(s Status) bool {
	return slices.Contains(w.Terminal, s)
}
