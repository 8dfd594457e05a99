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

import (
	"errors"
	"fmt"
)

var ErrInvalidOrder = errors.New("订单信息非法")

type Kind string

const (
	KindShop   Kind = "SHOP"
	KindLegacy Kind = "LEGACY"
)

func (k Kind) String() string {
	return string(k)
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	// StatusPaid 只用于旧版订单
	StatusPaid Status = "PAID"
)

func (s Status) String() string {
	return string(s)
}

// Order 金额均为整数的货币单位
type Order struct {
	ID          int64
	SN          string
	Kind        Kind
	Status      Status
	Version     int64
	Source      string
	CustomerID  int64
	Subtotal    int64
	ShippingFee int64
	ServiceFee  int64
	Discount    int64
	GrandTotal  int64
	Items       []OrderItem
	Ctime       int64
	Utime       int64
}

func (o Order) HasCustomer() bool {
	return o.CustomerID > 0
}

// Validate 校验下单时冻结的金额, 之后不会再重新计算
func (o Order) Validate() error {
	if _, ok := WorkflowOf(o.Kind); !ok {
		return fmt.Errorf("%w: 未知订单类型 %s", ErrInvalidOrder, o.Kind)
	}
	if o.Subtotal < 0 || o.ShippingFee < 0 || o.ServiceFee < 0 || o.Discount < 0 || o.GrandTotal < 0 {
		return fmt.Errorf("%w: 金额不能为负", ErrInvalidOrder)
	}
	if o.GrandTotal != o.Subtotal+o.ShippingFee+o.ServiceFee-o.Discount {
		return fmt.Errorf("%w: 总价 %d 与明细不符", ErrInvalidOrder, o.GrandTotal)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: 订单项为空", ErrInvalidOrder)
	}
	for _, item := range o.Items {
		if item.Qty <= 0 || item.Price < 0 {
			return fmt.Errorf("%w: 订单项 %s 数量或单价非法", ErrInvalidOrder, item.ProductName)
		}
	}
	return nil
}

type OrderItem struct {
	// ProductID 为 0 表示不关联商品
	ProductID   int64
	ProductName string
	Qty         int64
	Unit        string
	Price       int64
}
