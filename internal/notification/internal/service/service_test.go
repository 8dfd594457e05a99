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
	"testing"

	"github.com/ecodeclub/fulfillment/internal/notification/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	ns  []domain.Notification
	err error
}

func (f *fakeRepository) Create(_ context.Context, n domain.Notification) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n.ID = int64(len(f.ns) + 1)
	f.ns = append(f.ns, n)
	return n.ID, nil
}

func (f *fakeRepository) FindByCustomerID(_ context.Context, customerID int64, offset, limit int) ([]domain.Notification, error) {
	var res []domain.Notification
	for _, n := range f.ns {
		if n.CustomerID == customerID {
			res = append(res, n)
		}
	}
	if offset >= len(res) {
		return nil, nil
	}
	end := min(offset+limit, len(res))
	return res[offset:end], nil
}

// passThroughTransactor 直接执行 fn, 用于隔离数据库
type passThroughTransactor struct {
	calls int
}

func (p *passThroughTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

func TestService_Emit(t *testing.T) {
	testCases := []struct {
		name      string
		repo      *fakeRepository
		n         domain.Notification
		wantCount int
		wantType  domain.Type
		wantTx    int
	}{
		{
			name:      "写入成功",
			repo:      &fakeRepository{},
			n:         domain.Notification{CustomerID: 1, Title: "订单已送达", Message: "您的订单已送达", Type: domain.TypeSuccess},
			wantCount: 1,
			wantType:  domain.TypeSuccess,
			wantTx:    1,
		},
		{
			name:      "未指定类型_默认info",
			repo:      &fakeRepository{},
			n:         domain.Notification{CustomerID: 1, Title: "订单已确认"},
			wantCount: 1,
			wantType:  domain.TypeInfo,
			wantTx:    1,
		},
		{
			name: "没有顾客_忽略",
			repo: &fakeRepository{},
			n:    domain.Notification{Title: "订单已确认"},
		},
		{
			name:   "写入失败_不返回错误",
			repo:   &fakeRepository{err: errors.New("mock db error")},
			n:      domain.Notification{CustomerID: 1, Title: "订单已取消", Type: domain.TypeError},
			wantTx: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := &passThroughTransactor{}
			svc := NewService(tc.repo, tx)
			assert.NotPanics(t, func() {
				svc.Emit(context.Background(), tc.n)
			})
			assert.Equal(t, tc.wantTx, tx.calls)
			require.Len(t, tc.repo.ns, tc.wantCount)
			if tc.wantCount > 0 {
				assert.Equal(t, tc.wantType, tc.repo.ns[0].Type)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo, &passThroughTransactor{})
	for i := 0; i < 3; i++ {
		svc.Emit(context.Background(), domain.Notification{CustomerID: 1, Title: "t"})
	}
	svc.Emit(context.Background(), domain.Notification{CustomerID: 2, Title: "t"})

	res, err := svc.List(context.Background(), 1, 0, 2)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	res, err = svc.List(context.Background(), 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	res, err = svc.List(context.Background(), 3, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}
