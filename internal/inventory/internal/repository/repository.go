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

package repository

import (
	"context"

	"github.com/ecodeclub/fulfillment/internal/inventory/internal/domain"
	"github.com/ecodeclub/fulfillment/internal/inventory/internal/repository/dao"
)

var ErrProductNotFound = dao.ErrRecordNotFound

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	IncreaseStock(ctx context.Context, id int64, qty int64) (bool, error)
}

type productRepository struct {
	dao dao.ProductDAO
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{dao: d}
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:    p.Id,
		Name:  p.Name,
		Stock: p.Stock,
	}, nil
}

func (r *productRepository) IncreaseStock(ctx context.Context, id int64, qty int64) (bool, error) {
	affected, err := r.dao.IncrStock(ctx, id, qty)
	return affected > 0, err
}
