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
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/errs"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository/cache"
	"github.com/ecodeclub/fulfillment/internal/order/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const defaultListLimit = 20

type AdminHandler struct {
	svc      service.Service
	fsvc     service.FulfillmentService
	requests cache.RequestCache
	logger   *elog.Component
}

func NewAdminHandler(svc service.Service, fsvc service.FulfillmentService, requests cache.RequestCache) *AdminHandler {
	return &AdminHandler{
		svc:      svc,
		fsvc:     fsvc,
		requests: requests,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("order.admin")),
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/create", ginx.B[CreateOrderReq](h.Create))
	g.POST("/transition", ginx.B[TransitionReq](h.Transition))
	g.POST("/delete", ginx.B[OrderIDReq](h.Delete))
	g.POST("/detail", ginx.B[OrderIDReq](h.Detail))
	g.POST("/list", ginx.B[ListReq](h.List))
}

func (h *AdminHandler) Create(ctx *ginx.Context, req CreateOrderReq) (ginx.Result, error) {
	o, err := h.svc.CreateOrder(ctx.Request.Context(), req.toDomain())
	if errors.Is(err, service.ErrInvalidOrder) {
		return errorResult(errs.InvalidOrder), nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newOrder(o)}, nil
}

func (h *AdminHandler) Transition(ctx *ginx.Context, req TransitionReq) (ginx.Result, error) {
	c := ctx.Request.Context()
	if req.RequestID != "" {
		ok, err := h.requests.Acquire(c, req.RequestID)
		if err != nil {
			return systemErrorResult, err
		}
		if !ok {
			return errorResult(errs.DuplicatedRequest), nil
		}
	}
	res, err := h.fsvc.Transition(c, req.toDomain())
	if err != nil {
		h.release(c, req.RequestID)
		return h.transitionErrorResult(err)
	}
	return ginx.Result{Data: newTransitionResult(res)}, nil
}

func (h *AdminHandler) release(ctx context.Context, requestID string) {
	if requestID == "" {
		return
	}
	if err := h.requests.Release(ctx, requestID); err != nil {
		h.logger.Warn("释放请求去重标记失败", elog.FieldErr(err), elog.String("requestId", requestID))
	}
}

func (h *AdminHandler) transitionErrorResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return errorResult(errs.OrderNotFound), nil
	case errors.Is(err, service.ErrInvalidStatus):
		return errorResult(errs.InvalidStatus), nil
	case errors.Is(err, service.ErrConflict):
		return errorResult(errs.OrderConflict), nil
	case errors.Is(err, service.ErrDependencyFailure):
		return errorResult(errs.DependencyFailure), err
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) Delete(ctx *ginx.Context, req OrderIDReq) (ginx.Result, error) {
	err := h.fsvc.DeleteOrder(ctx.Request.Context(), req.ID)
	if err != nil {
		return h.transitionErrorResult(err)
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req OrderIDReq) (ginx.Result, error) {
	o, err := h.svc.FindOrder(ctx.Request.Context(), req.ID)
	if errors.Is(err, service.ErrOrderNotFound) {
		return errorResult(errs.OrderNotFound), nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newOrder(o)}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	os, total, err := h.svc.ListOrders(ctx.Request.Context(), req.Offset, limit, domain.Status(req.Status))
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: OrderList{
			Total: total,
			Orders: slice.Map(os, func(idx int, src domain.Order) Order {
				return newOrder(src)
			}),
		},
	}, nil
}
