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

const (
	orderEventsTopic = "order_events"

	orderRevenueRecognized = "order_revenue_recognized"
)

// OrderEvent 订单模块发出的事件, 只关心确认收入的那一类
type OrderEvent struct {
	Type       string `json:"type"`
	Key        string `json:"key"`
	OrderID    int64  `json:"order_id"`
	OrderSN    string `json:"order_sn"`
	CustomerID int64  `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Version    int64  `json:"version"`
}
