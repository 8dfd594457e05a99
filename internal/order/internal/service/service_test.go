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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/pkg/sequencenumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *sequencenumber.Generator {
	return sequencenumber.NewGeneratorWith(func() time.Time {
		return time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	}, func() string {
		return "nUfojcH2M5j2j3Tk5A1mf2"
	})
}

func TestService_CreateOrder(t *testing.T) {
	items := []domain.OrderItem{{ProductID: 1, ProductName: "拿铁", Qty: 2, Price: 500}}
	testCases := []struct {
		name    string
		order   domain.Order
		wantErr error
		assert  func(t *testing.T, o domain.Order)
	}{
		{
			name: "默认为商城订单",
			order: domain.Order{
				Status:     domain.StatusDelivered,
				CustomerID: 7,
				Subtotal:   1000,
				GrandTotal: 1000,
				Items:      items,
			},
			assert: func(t *testing.T, o domain.Order) {
				assert.NotZero(t, o.ID)
				assert.Equal(t, domain.KindShop, o.Kind)
				assert.Equal(t, domain.StatusPending, o.Status)
				assert.Equal(t, int64(1), o.Version)
				assert.NotEmpty(t, o.SN)
			},
		},
		{
			name: "保留传入的序列号",
			order: domain.Order{
				SN:         "LEGACY-001",
				Kind:       domain.KindLegacy,
				Subtotal:   1000,
				GrandTotal: 1000,
				Items:      items,
			},
			assert: func(t *testing.T, o domain.Order) {
				assert.Equal(t, "LEGACY-001", o.SN)
				assert.Equal(t, domain.KindLegacy, o.Kind)
			},
		},
		{
			name: "总价不符",
			order: domain.Order{
				Subtotal:   1000,
				Discount:   100,
				GrandTotal: 1000,
				Items:      items,
			},
			wantErr: ErrInvalidOrder,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(newMemStore(), newTestGenerator())
			o, err := svc.CreateOrder(context.Background(), tc.order)
			assert.ErrorIs(t, err, tc.wantErr)
			if err == nil {
				tc.assert(t, o)
			}
		})
	}
}

func TestService_ListOrders(t *testing.T) {
	store := newMemStore(
		domain.Order{ID: 1, Status: domain.StatusPending},
		domain.Order{ID: 2, Status: domain.StatusDelivered},
		domain.Order{ID: 3, Status: domain.StatusPending},
	)
	svc := NewService(store, newTestGenerator())

	os, total, err := svc.ListOrders(context.Background(), 0, 1, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, os, 1)
	assert.Equal(t, int64(3), os[0].ID)

	os, total, err = svc.ListOrders(context.Background(), 0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, os, 3)

	_, err = svc.FindOrder(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
