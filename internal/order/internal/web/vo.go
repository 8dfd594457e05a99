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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/fulfillment/internal/loyalty"
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/service"
)

type OrderIDReq struct {
	ID int64 `json:"id"`
}

type ListReq struct {
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

type TransitionReq struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	// ExpectedStatus 和 ExpectedVersion 为空时不校验
	ExpectedStatus  string `json:"expectedStatus,omitempty"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
	RequestID       string `json:"requestId,omitempty"`
}

func (r TransitionReq) toDomain() service.TransitionRequest {
	req := service.TransitionRequest{
		OrderID:         r.ID,
		Target:          domain.Status(r.Status),
		ExpectedVersion: r.ExpectedVersion,
	}
	if r.ExpectedStatus != "" {
		s := domain.Status(r.ExpectedStatus)
		req.ExpectedStatus = &s
	}
	return req
}

type CreateOrderReq struct {
	SN          string      `json:"sn,omitempty"`
	Kind        string      `json:"kind,omitempty"`
	Source      string      `json:"source,omitempty"`
	CustomerID  int64       `json:"customerId,omitempty"`
	Subtotal    int64       `json:"subtotal"`
	ShippingFee int64       `json:"shippingFee,omitempty"`
	ServiceFee  int64       `json:"serviceFee,omitempty"`
	Discount    int64       `json:"discount,omitempty"`
	GrandTotal  int64       `json:"grandTotal"`
	Items       []OrderItem `json:"items"`
}

func (r CreateOrderReq) toDomain() domain.Order {
	return domain.Order{
		SN:          r.SN,
		Kind:        domain.Kind(r.Kind),
		Source:      r.Source,
		CustomerID:  r.CustomerID,
		Subtotal:    r.Subtotal,
		ShippingFee: r.ShippingFee,
		ServiceFee:  r.ServiceFee,
		Discount:    r.Discount,
		GrandTotal:  r.GrandTotal,
		Items: slice.Map(r.Items, func(idx int, src OrderItem) domain.OrderItem {
			return domain.OrderItem{
				ProductID:   src.ProductID,
				ProductName: src.ProductName,
				Qty:         src.Qty,
				Unit:        src.Unit,
				Price:       src.Price,
			}
		}),
	}
}

type Order struct {
	ID          int64       `json:"id"`
	SN          string      `json:"sn"`
	Kind        string      `json:"kind"`
	Status      string      `json:"status"`
	Version     int64       `json:"version"`
	Source      string      `json:"source,omitempty"`
	CustomerID  int64       `json:"customerId,omitempty"`
	Subtotal    int64       `json:"subtotal"`
	ShippingFee int64       `json:"shippingFee"`
	ServiceFee  int64       `json:"serviceFee"`
	Discount    int64       `json:"discount"`
	GrandTotal  int64       `json:"grandTotal"`
	Items       []OrderItem `json:"items,omitempty"`
	Ctime       int64       `json:"ctime"`
	Utime       int64       `json:"utime"`
}

type OrderItem struct {
	ProductID   int64  `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Qty         int64  `json:"qty"`
	Unit        string `json:"unit,omitempty"`
	Price       int64  `json:"price"`
}

func newOrder(o domain.Order) Order {
	return Order{
		ID:          o.ID,
		SN:          o.SN,
		Kind:        o.Kind.String(),
		Status:      o.Status.String(),
		Version:     o.Version,
		Source:      o.Source,
		CustomerID:  o.CustomerID,
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		ServiceFee:  o.ServiceFee,
		Discount:    o.Discount,
		GrandTotal:  o.GrandTotal,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				ProductID:   src.ProductID,
				ProductName: src.ProductName,
				Qty:         src.Qty,
				Unit:        src.Unit,
				Price:       src.Price,
			}
		}),
		Ctime: o.Ctime,
		Utime: o.Utime,
	}
}

type OrderList struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type Accrual struct {
	PointsEarned int64  `json:"pointsEarned"`
	Tier         string `json:"tier"`
	Points       int64  `json:"points"`
}

type TransitionResult struct {
	Order    Order    `json:"order"`
	Changed  bool     `json:"changed"`
	Terminal bool     `json:"terminal"`
	Accrual  *Accrual `json:"accrual,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func newTransitionResult(res service.TransitionResult) TransitionResult {
	vo := TransitionResult{
		Order:    newOrder(res.Order),
		Changed:  res.Changed,
		Terminal: res.Terminal,
		Warnings: res.Warnings,
	}
	if res.Accrual != nil {
		vo.Accrual = newAccrual(*res.Accrual)
	}
	return vo
}

func newAccrual(a loyalty.Accrual) *Accrual {
	return &Accrual{
		PointsEarned: a.PointsEarned,
		Tier:         a.Tier.String(),
		Points:       a.Points,
	}
}
