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
	"github.com/ecodeclub/fulfillment/internal/loyalty/internal/domain"
)

type CustomerReq struct {
	CustomerID int64 `json:"customerId"`
	Offset     int   `json:"offset,omitempty"`
	Limit      int   `json:"limit,omitempty"`
}

type RedeemReq struct {
	CustomerID  int64  `json:"customerId"`
	Points      int64  `json:"points"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

type Account struct {
	CustomerID    int64              `json:"customerId"`
	Points        int64              `json:"points"`
	Tier          string             `json:"tier"`
	TotalSpent    int64              `json:"totalSpent"`
	OrderCount    int64              `json:"orderCount"`
	LastOrderDate int64              `json:"lastOrderDate"`
	Transactions  []PointTransaction `json:"transactions,omitempty"`
}

func newAccount(acc domain.Account) Account {
	return Account{
		CustomerID:    acc.CustomerID,
		Points:        acc.Points,
		Tier:          acc.Tier.String(),
		TotalSpent:    acc.TotalSpent,
		OrderCount:    acc.OrderCount,
		LastOrderDate: acc.LastOrderDate,
	}
}

type PointTransaction struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Ctime       int64  `json:"ctime"`
}

func newPointTransaction(t domain.PointTransaction) PointTransaction {
	return PointTransaction{
		ID:          t.ID,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        t.Type.String(),
		Ctime:       t.Ctime,
	}
}

type TierMultiplier struct {
	Tier       string `json:"tier"`
	Multiplier string `json:"multiplier"`
}

type TierMultiplierList struct {
	Multipliers []TierMultiplier `json:"multipliers"`
}
