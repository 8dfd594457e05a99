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
	"errors"
	"fmt"

	"github.com/ecodeclub/fulfillment/internal/finance"
	"github.com/ecodeclub/fulfillment/internal/inventory"
	"github.com/ecodeclub/fulfillment/internal/loyalty"
	"github.com/ecodeclub/fulfillment/internal/notification"
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/event"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository"
	"github.com/ecodeclub/fulfillment/internal/pkg/gormx"
	"github.com/ecodeclub/fulfillment/internal/pkg/snowflake"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrConflict          = errors.New("订单已被并发修改")
	ErrInvalidStatus     = errors.New("目标状态非法")
	ErrDependencyFailure = errors.New("订单履约依赖失败")
)

var transitionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fulfillment",
	Subsystem: "order",
	Name:      "transitions_total",
	Help:      "订单状态变更次数",
}, []string{"kind", "target", "result"})

type TransitionRequest struct {
	OrderID int64
	Target  domain.Status
	// ExpectedStatus 不为空时, 订单当前状态必须与之相同
	ExpectedStatus *domain.Status
	// ExpectedVersion 不为空时, 订单当前版本号必须与之相同
	ExpectedVersion *int64
}

type TransitionResult struct {
	Order domain.Order
	// Changed 为 false 表示订单已经处于目标状态
	Changed bool
	// Terminal 订单已经进入该类型的终态
	Terminal bool
	// Accrual 提交后积分入账的结果, 没有入账时为 nil
	Accrual  *loyalty.Accrual
	Warnings []string
}

//go:generate mockgen -source=./fulfillment.go -destination=../../mocks/fulfillment.mock.go -package=ordermocks FulfillmentService
type FulfillmentService interface {
	// Transition 推进订单状态并在同一个事务中完成库存归还, 财务入账, 通知和本地消息.
	// 积分在事务提交之后入账, 失败只会体现在 Warnings 中
	Transition(ctx context.Context, req TransitionRequest) (TransitionResult, error)
	// DeleteOrder 删除订单, 未取消的订单会先归还库存. 已经入账的财务流水不会冲销
	DeleteOrder(ctx context.Context, orderID int64) error
}

type fulfillmentService struct {
	repo         repository.OrderRepository
	events       repository.OrderEventRepository
	inventorySvc inventory.Service
	financeSvc   finance.Service
	noticeSvc    notification.Service
	loyaltySvc   loyalty.Service
	tx           gormx.Transactor
	idGen        snowflake.Generator
	logger       *elog.Component
}

func NewFulfillmentService(
	repo repository.OrderRepository,
	events repository.OrderEventRepository,
	inventorySvc inventory.Service,
	financeSvc finance.Service,
	noticeSvc notification.Service,
	loyaltySvc loyalty.Service,
	tx gormx.Transactor,
	idGen snowflake.Generator,
) FulfillmentService {
	return &fulfillmentService{
		repo:         repo,
		events:       events,
		inventorySvc: inventorySvc,
		financeSvc:   financeSvc,
		noticeSvc:    noticeSvc,
		loyaltySvc:   loyaltySvc,
		tx:           tx,
		idGen:        idGen,
		logger:       elog.DefaultLogger.With(elog.FieldComponent("order.fulfillment")),
	}
}

func (s *fulfillmentService) Transition(ctx context.Context, req TransitionRequest) (TransitionResult, error) {
	var (
		res     TransitionResult
		revenue bool
		kind    domain.Kind
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}
		kind = o.Kind
		if req.ExpectedStatus != nil && *req.ExpectedStatus != o.Status {
			return fmt.Errorf("%w: 期望状态 %s, 实际状态 %s", ErrConflict, *req.ExpectedStatus, o.Status)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != o.Version {
			return fmt.Errorf("%w: 期望版本 %d, 实际版本 %d", ErrConflict, *req.ExpectedVersion, o.Version)
		}
		wf, ok := domain.WorkflowOf(o.Kind)
		if !ok || !wf.Recognizes(req.Target) {
			return fmt.Errorf("%w: 订单类型 %s 不支持状态 %s", ErrInvalidStatus, o.Kind, req.Target)
		}
		if o.Status == req.Target {
			res = TransitionResult{Order: o, Terminal: wf.IsTerminal(o.Status)}
			return nil
		}

		if req.Target == domain.StatusCancelled {
			if err = s.restock(ctx, o); err != nil {
				return err
			}
		}
		revenue = wf.IsRevenue(req.Target)
		if revenue {
			if err = s.financeSvc.Record(ctx, s.revenueTransactions(o)); err != nil {
				return fmt.Errorf("财务入账失败: %w", err)
			}
		}

		ok, err = s.repo.CompareAndSwapStatus(ctx, o.ID, o.Version, req.Target)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: 订单 %d 版本 %d 已失效", ErrConflict, o.ID, o.Version)
		}
		o.Status = req.Target
		o.Version++

		if o.HasCustomer() {
			if notice, ok := domain.NoticeFor(req.Target, o.SN); ok {
				s.noticeSvc.Emit(ctx, notification.Notification{
					CustomerID: o.CustomerID,
					Title:      notice.Title,
					Message:    notice.Message,
					Type:       notification.Type(notice.Type),
				})
			}
			if revenue {
				if err = s.appendRevenueEvent(ctx, o); err != nil {
					return err
				}
			}
		}
		res = TransitionResult{Order: o, Changed: true, Terminal: wf.IsTerminal(o.Status)}
		return nil
	})
	if err != nil {
		err = s.classify(err)
		s.observe(req, kind, err)
		return TransitionResult{}, err
	}
	s.observe(req, kind, nil)

	if res.Changed && revenue && res.Order.HasCustomer() {
		s.accrue(ctx, &res)
	}
	return res, nil
}

func (s *fulfillmentService) restock(ctx context.Context, o domain.Order) error {
	for _, item := range o.Items {
		if item.ProductID <= 0 {
			continue
		}
		resolved, err := s.inventorySvc.IncreaseStock(ctx, item.ProductID, item.Qty)
		if err != nil {
			return fmt.Errorf("归还库存失败: productID=%d: %w", item.ProductID, err)
		}
		if !resolved {
			s.logger.Warn("商品不存在, 跳过库存归还",
				elog.Int64("orderID", o.ID),
				elog.Int64("productID", item.ProductID),
				elog.Int64("qty", item.Qty))
		}
	}
	return nil
}

func (s *fulfillmentService) revenueTransactions(o domain.Order) []finance.Transaction {
	txns := []finance.Transaction{
		{
			Type:        finance.TransactionTypeIncome,
			Amount:      o.Subtotal,
			Category:    finance.CategoryOrderSubtotal,
			Description: fmt.Sprintf("订单 %s 商品收入", o.SN),
			OrderID:     o.ID,
		},
	}
	if o.ShippingFee > 0 {
		txns = append(txns, finance.Transaction{
			Type:        finance.TransactionTypeIncome,
			Amount:      o.ShippingFee,
			Category:    finance.CategoryShippingFee,
			Description: fmt.Sprintf("订单 %s 运费", o.SN),
			OrderID:     o.ID,
		})
	}
	if o.ServiceFee > 0 {
		txns = append(txns, finance.Transaction{
			Type:        finance.TransactionTypeIncome,
			Amount:      o.ServiceFee,
			Category:    finance.CategoryServiceFee,
			Description: fmt.Sprintf("订单 %s 服务费", o.SN),
			OrderID:     o.ID,
		})
	}
	return txns
}

func (s *fulfillmentService) appendRevenueEvent(ctx context.Context, o domain.Order) error {
	evt := event.OrderEvent{
		Type:       event.TypeRevenueRecognized,
		Key:        event.TransitionKey(o.ID, o.Version),
		OrderID:    o.ID,
		OrderSN:    o.SN,
		CustomerID: o.CustomerID,
		Amount:     o.GrandTotal,
		Status:     o.Status.String(),
		Version:    o.Version,
	}
	payload, err := evt.Marshal()
	if err != nil {
		return err
	}
	return s.events.Append(ctx, domain.OutboxEvent{
		EventID: s.idGen.Next(),
		Topic:   event.OrderEventsTopic,
		Key:     evt.Key,
		Payload: payload,
	})
}

// accrue 在事务提交后执行, 失败不回滚订单, 由本地消息兜底
func (s *fulfillmentService) accrue(ctx context.Context, res *TransitionResult) {
	o := res.Order
	accrual, err := s.loyaltySvc.Accrue(ctx, loyalty.AccrualRequest{
		CustomerID: o.CustomerID,
		Amount:     o.GrandTotal,
		OrderID:    o.ID,
		OrderSN:    o.SN,
		Key:        event.TransitionKey(o.ID, o.Version),
	})
	if errors.Is(err, loyalty.ErrDuplicatedAccrual) {
		// 本地消息已经先一步入账
		s.logger.Debug("积分已入账", elog.String("key", event.TransitionKey(o.ID, o.Version)))
		return
	}
	if err != nil {
		s.logger.Warn("积分入账失败, 等待本地消息补偿",
			elog.FieldErr(err),
			elog.Int64("orderID", o.ID),
			elog.Int64("customerID", o.CustomerID))
		res.Warnings = append(res.Warnings, fmt.Sprintf("积分入账失败: %s", err.Error()))
		return
	}
	res.Accrual = &accrual
}

func (s *fulfillmentService) DeleteOrder(ctx context.Context, orderID int64) error {
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status != domain.StatusCancelled {
			if err = s.restock(ctx, o); err != nil {
				return err
			}
		}
		return s.repo.DeleteOrder(ctx, o.ID)
	})
	if err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *fulfillmentService) classify(err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidStatus):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrDependencyFailure, err)
	}
}

func (s *fulfillmentService) observe(req TransitionRequest, kind domain.Kind, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotFound):
		result = "not_found"
	case errors.Is(err, ErrConflict):
		result = "conflict"
	case errors.Is(err, ErrInvalidStatus):
		result = "invalid"
	default:
		result = "error"
	}
	label := kind.String()
	if label == "" {
		// 订单没有加载成功
		label = "unknown"
	}
	transitionCounter.WithLabelValues(label, req.Target.String(), result).Inc()
}
