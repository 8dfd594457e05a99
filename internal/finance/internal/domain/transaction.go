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

type TransactionType uint8

func (t TransactionType) ToUint8() uint8 {
	return uint8(t)
}

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeIncome:
		return "INCOME"
	case TransactionTypeExpense:
		return "EXPENSE"
	default:
		return "UNKNOWN"
	}
}

const (
	TransactionTypeIncome  TransactionType = 1
	TransactionTypeExpense TransactionType = 2
)

// 订单收入拆成三类分别入账
const (
	CategoryOrderSubtotal = "order_subtotal"
	CategoryShippingFee   = "shipping_fee"
	CategoryServiceFee    = "service_fee"
)

// Transaction 财务流水, 只增不改
type Transaction struct {
	ID          int64
	Type        TransactionType
	Amount      int64
	Category    string
	Description string
	OrderID     int64
	// Date 记账时间, 毫秒
	Date int64
}
