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

//go:build e2e

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/fulfillment/internal/finance"
	"github.com/ecodeclub/fulfillment/internal/inventory"
	"github.com/ecodeclub/fulfillment/internal/loyalty"
	"github.com/ecodeclub/fulfillment/internal/notification"
	"github.com/ecodeclub/fulfillment/internal/order"
	"github.com/ecodeclub/fulfillment/internal/pkg/snowflake"
	testioc "github.com/ecodeclub/fulfillment/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ModuleTestSuite struct {
	suite.Suite
	db         *egorm.Component
	mod        *order.Module
	inventory  *inventory.Module
	finance    *finance.Module
	notice     *notification.Module
	loyaltyMod *loyalty.Module
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	q := testioc.InitMQ()
	ec := testioc.InitCache()
	idGen, err := snowflake.NewNodeGenerator(1)
	require.NoError(s.T(), err)

	s.inventory = inventory.InitModule(s.db)
	s.finance = finance.InitModule(s.db)
	s.notice = notification.InitModule(s.db)
	s.loyaltyMod, err = loyalty.InitModule(s.db, q, ec)
	require.NoError(s.T(), err)
	s.mod, err = order.InitModule(s.db, q, ec, s.inventory, s.finance, s.notice, s.loyaltyMod, idGen)
	require.NoError(s.T(), err)
}

var tables = []string{
	"orders", "order_items", "order_events", "products", "financial_transactions",
	"notifications", "loyalty_accounts", "point_transactions",
}

func (s *ModuleTestSuite) TearDownTest() {
	for _, table := range tables {
		s.NoError(s.db.Exec("TRUNCATE TABLE `" + table + "`").Error)
	}
}

func (s *ModuleTestSuite) TearDownSuite() {
	for _, table := range append(tables, "tier_multipliers") {
		s.NoError(s.db.Exec("DROP TABLE `" + table + "`").Error)
	}
}

func (s *ModuleTestSuite) createProduct(id, stock int64) {
	now := time.Now().UnixMilli()
	err := s.db.Exec("INSERT INTO `products` (`id`, `name`, `stock`, `ctime`, `utime`) VALUES (?, ?, ?, ?, ?)",
		id, "商品", stock, now, now).Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) createOrder(customerID int64) order.Order {
	o, err := s.mod.Svc.CreateOrder(context.Background(), order.Order{
		CustomerID:  customerID,
		Source:      "POS",
		Subtotal:    1500000,
		ShippingFee: 20000,
		ServiceFee:  10000,
		Discount:    30000,
		GrandTotal:  1500000,
		Items: []order.OrderItem{
			{ProductID: 101, ProductName: "手冲咖啡豆", Qty: 2, Unit: "袋", Price: 500000},
			{ProductID: 102, ProductName: "滤杯", Qty: 1, Unit: "个", Price: 500000},
			{ProductID: 0, ProductName: "包装费", Qty: 1, Price: 0},
		},
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), order.StatusPending, o.Status)
	return o
}

func (s *ModuleTestSuite) transition(id int64, target order.Status) order.TransitionResult {
	res, err := s.mod.FSvc.Transition(context.Background(), order.TransitionRequest{OrderID: id, Target: target})
	require.NoError(s.T(), err)
	return res
}

func (s *ModuleTestSuite) TestTransition_FullLifecycle() {
	t := s.T()
	ctx := context.Background()
	const customerID = 9001
	o := s.createOrder(customerID)

	for _, st := range []order.Status{order.StatusConfirmed, order.StatusPreparing, order.StatusShipping} {
		res := s.transition(o.ID, st)
		assert.True(t, res.Changed)
		assert.Nil(t, res.Accrual)
	}
	res := s.transition(o.ID, order.StatusDelivered)
	assert.True(t, res.Changed)
	assert.Equal(t, int64(5), res.Order.Version)
	require.NotNil(t, res.Accrual)
	// 1500000 / 10000 = 150, 首单按铜牌倍率计算, 之后升级为银牌
	assert.Equal(t, int64(150), res.Accrual.PointsEarned)
	assert.Equal(t, loyalty.TierSilver, res.Accrual.Tier)

	txns, err := s.finance.Svc.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	var total int64
	for _, txn := range txns {
		assert.Equal(t, finance.TransactionTypeIncome, txn.Type)
		total += txn.Amount
	}
	assert.Equal(t, int64(1530000), total)

	acc, err := s.loyaltyMod.Svc.GetAccount(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), acc.Points)
	assert.Equal(t, int64(1500000), acc.TotalSpent)
	assert.Equal(t, int64(1), acc.OrderCount)

	ns, err := s.notice.Svc.List(ctx, customerID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, ns, 4)

	// 重复送达不产生任何副作用
	res = s.transition(o.ID, order.StatusDelivered)
	assert.False(t, res.Changed)
	txns, err = s.finance.Svc.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	// 本地消息投递后, 积分消费者按幂等键去重, 不会重复发放
	n, err := s.mod.RelaySvc.Relay(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	time.Sleep(time.Second)
	acc, err = s.loyaltyMod.Svc.GetAccount(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), acc.Points)
	n, err = s.mod.RelaySvc.Relay(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func (s *ModuleTestSuite) TestTransition_CancelRestocks() {
	t := s.T()
	ctx := context.Background()
	s.createProduct(101, 10)
	o := s.createOrder(0)

	res := s.transition(o.ID, order.StatusCancelled)
	assert.True(t, res.Changed)

	stock, err := s.inventory.Svc.GetStock(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stock)
	// 102 已经被删除, 跳过归还
	_, err = s.inventory.Svc.GetStock(ctx, 102)
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)

	txns, err := s.finance.Svc.ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func (s *ModuleTestSuite) TestTransition_ConcurrentDelivery() {
	t := s.T()
	const customerID = 9002
	o := s.createOrder(customerID)
	s.transition(o.ID, order.StatusShipping)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.mod.FSvc.Transition(context.Background(), order.TransitionRequest{
				OrderID: o.ID,
				Target:  order.StatusDelivered,
			})
			if err != nil {
				assert.True(t, errors.Is(err, order.ErrConflict), err)
				return
			}
			if res.Changed {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, changed)

	txns, err := s.finance.Svc.ListByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 3)
	acc, err := s.loyaltyMod.Svc.GetAccount(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), acc.Points)
}

func (s *ModuleTestSuite) TestTransition_ExpectedVersion() {
	t := s.T()
	o := s.createOrder(0)
	stale := o.Version
	s.transition(o.ID, order.StatusConfirmed)

	_, err := s.mod.FSvc.Transition(context.Background(), order.TransitionRequest{
		OrderID:         o.ID,
		Target:          order.StatusPreparing,
		ExpectedVersion: &stale,
	})
	assert.ErrorIs(t, err, order.ErrConflict)

	_, err = s.mod.FSvc.Transition(context.Background(), order.TransitionRequest{OrderID: o.ID, Target: order.StatusPaid})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func (s *ModuleTestSuite) TestDeleteOrder() {
	t := s.T()
	ctx := context.Background()
	s.createProduct(101, 0)
	s.createProduct(102, 5)
	o := s.createOrder(0)

	require.NoError(t, s.mod.FSvc.DeleteOrder(ctx, o.ID))
	stock, err := s.inventory.Svc.GetStock(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stock)
	stock, err = s.inventory.Svc.GetStock(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock)

	_, err = s.mod.Svc.FindOrder(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.ErrorIs(t, s.mod.FSvc.DeleteOrder(ctx, o.ID), order.ErrOrderNotFound)
}
