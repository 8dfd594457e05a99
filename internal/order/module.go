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

package order

import (
	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/job"
	"github.com/ecodeclub/fulfillment/internal/order/internal/service"
	"github.com/ecodeclub/fulfillment/internal/order/internal/web"
)

type (
	Service             = service.Service
	FulfillmentService  = service.FulfillmentService
	RelayService        = service.RelayService
	TransitionRequest   = service.TransitionRequest
	TransitionResult    = service.TransitionResult
	AdminHandler        = web.AdminHandler
	RelayOrderEventsJob = job.RelayOrderEventsJob
	Order               = domain.Order
	OrderItem           = domain.OrderItem
	Kind                = domain.Kind
	Status              = domain.Status
)

const (
	KindShop   = domain.KindShop
	KindLegacy = domain.KindLegacy

	StatusPending   = domain.StatusPending
	StatusConfirmed = domain.StatusConfirmed
	StatusPreparing = domain.StatusPreparing
	StatusShipping  = domain.StatusShipping
	StatusDelivered = domain.StatusDelivered
	StatusCancelled = domain.StatusCancelled
	StatusPaid      = domain.StatusPaid
)

var (
	ErrOrderNotFound     = service.ErrOrderNotFound
	ErrInvalidOrder      = service.ErrInvalidOrder
	ErrConflict          = service.ErrConflict
	ErrInvalidStatus     = service.ErrInvalidStatus
	ErrDependencyFailure = service.ErrDependencyFailure
)

type Module struct {
	Svc      Service
	FSvc     FulfillmentService
	RelaySvc RelayService
	AdminHdl *AdminHandler
	RelayJob *RelayOrderEventsJob
}
