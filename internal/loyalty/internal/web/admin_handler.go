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
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/errs"
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultTransactionLimit = 20

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/loyalty")
	g.POST("/account", ginx.B[CustomerReq](h.Account))
	g.POST("/redeem", ginx.B[RedeemReq](h.Redeem))
	g.POST("/multiplier/save", ginx.B[TierMultiplier](h.SaveMultiplier))
	g.GET("/multiplier/list", ginx.W(h.ListMultipliers))
}

func (h *AdminHandler) Account(ctx *ginx.Context, req CustomerReq) (ginx.Result, error) {
	acc, err := h.svc.GetAccount(ctx.Request.Context(), req.CustomerID)
	if errors.Is(err, service.ErrAccountNotFound) {
		return errorResult(errs.AccountNotFound), nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	txns, err := h.svc.ListPointTransactions(ctx.Request.Context(), req.CustomerID, req.Offset, limit)
	if err != nil {
		return systemErrorResult, err
	}
	res := newAccount(acc)
	res.Transactions = slice.Map(txns, func(idx int, src domain.PointTransaction) PointTransaction {
		return newPointTransaction(src)
	})
	return ginx.Result{Data: res}, nil
}

func (h *AdminHandler) Redeem(ctx *ginx.Context, req RedeemReq) (ginx.Result, error) {
	acc, err := h.svc.Redeem(ctx.Request.Context(), req.CustomerID, req.Points, req.Key, req.Description)
	switch {
	case err == nil:
		return ginx.Result{Data: newAccount(acc)}, nil
	case errors.Is(err, service.ErrPointsNotEnough):
		return errorResult(errs.PointsNotEnough), nil
	case errors.Is(err, service.ErrDuplicatedAccrual):
		return errorResult(errs.DuplicatedRequest), nil
	case errors.Is(err, service.ErrInvalidAccrual):
		return errorResult(errs.InvalidRequest), nil
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) SaveMultiplier(ctx *ginx.Context, req TierMultiplier) (ginx.Result, error) {
	m, err := decimal.NewFromString(req.Multiplier)
	if err != nil {
		return errorResult(errs.InvalidMultiplier), nil
	}
	err = h.svc.SaveTierMultiplier(ctx.Request.Context(), domain.TierMultiplier{
		Tier:       domain.Tier(req.Tier),
		Multiplier: m,
	})
	if errors.Is(err, service.ErrInvalidMultiplier) {
		return errorResult(errs.InvalidMultiplier), nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) ListMultipliers(ctx *ginx.Context) (ginx.Result, error) {
	ms, err := h.svc.TierMultipliers(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: TierMultiplierList{
			Multipliers: slice.Map(ms, func(idx int, src domain.TierMultiplier) TierMultiplier {
				return TierMultiplier{Tier: src.Tier.String(), Multiplier: src.Multiplier.String()}
			}),
		},
	}, nil
}
