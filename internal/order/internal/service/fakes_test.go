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
	"cmp"
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/ecodeclub/fulfillment/internal/order/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/order/internal/repository"
)

// memStore 同时实现订单仓储, 事件仓储和事务, 事务失败时恢复快照
type memStore struct {
	mu     sync.Mutex
	orders map[int64]domain.Order
	events []domain.OutboxEvent
	failed []domain.OutboxEvent
	nextID int64

	casErr    error
	casStale  bool
	deleteErr error
}

func newMemStore(orders ...domain.Order) *memStore {
	s := &memStore{orders: make(map[int64]domain.Order), nextID: 1}
	for _, o := range orders {
		s.orders[o.ID] = o
		s.nextID = max(s.nextID, o.ID+1)
	}
	return s
}

func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	orders := maps.Clone(s.orders)
	events := slices.Clone(s.events)
	s.mu.Unlock()
	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.orders, s.events = orders, events
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) order(id int64) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memStore) CreateOrder(_ context.Context, o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID
	o.Version = 1
	s.nextID++
	s.orders[o.ID] = o
	return o, nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return o, nil
}

func (s *memStore) FindByIDForUpdate(ctx context.Context, id int64) (domain.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *memStore) FindBySN(_ context.Context, sn string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.SN == sn {
			return o, nil
		}
	}
	return domain.Order{}, repository.ErrOrderNotFound
}

func (s *memStore) CompareAndSwapStatus(_ context.Context, id, version int64, status domain.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.casErr != nil {
		return false, s.casErr
	}
	o, ok := s.orders[id]
	if !ok || o.Version != version || s.casStale {
		return false, nil
	}
	o.Status = status
	o.Version++
	s.orders[id] = o
	return true, nil
}

func (s *memStore) DeleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *memStore) ListOrders(_ context.Context, offset, limit int, status domain.Status) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	res := make([]domain.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		o := s.orders[ids[i]]
		if status != "" && o.Status != status {
			continue
		}
		res = append(res, o)
	}
	if offset >= len(res) {
		return []domain.Order{}, nil
	}
	return res[offset:min(offset+limit, len(res))], nil
}

func (s *memStore) TotalOrders(_ context.Context, status domain.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cnt int64
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			cnt++
		}
	}
	return cnt, nil
}

func (s *memStore) Append(_ context.Context, evt domain.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	evt.ID = int64(len(s.events) + 1)
	s.events = append(s.events, evt)
	return nil
}

func (s *memStore) FindPending(_ context.Context, limit int) ([]domain.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := slices.Clone(s.events)
	slices.SortStableFunc(res, func(a, b domain.OutboxEvent) int {
		return cmp.Compare(a.Attempts, b.Attempts)
	})
	return res[:min(limit, len(res))], nil
}

func (s *memStore) MarkSent(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = slices.DeleteFunc(s.events, func(evt domain.OutboxEvent) bool {
		return slices.Contains(ids, evt.ID)
	})
	return nil
}

func (s *memStore) IncrAttempts(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Attempts++
			return nil
		}
	}
	return errors.New("事件不存在")
}

func (s *memStore) MarkFailed(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Attempts++
			s.failed = append(s.failed, s.events[i])
			s.events = slices.Delete(s.events, i, i+1)
			return nil
		}
	}
	return errors.New("事件不存在")
}

func (s *memStore) pending() []domain.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

type fixedIDGenerator struct {
	id int64
}

func (g *fixedIDGenerator) Next() int64 {
	g.id++
	return g.id
}
