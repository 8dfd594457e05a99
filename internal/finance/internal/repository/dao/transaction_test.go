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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockGORM(t *testing.T, mockDB *sql.DB) *gorm.DB {
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestTransactionDAO_Insert(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		txns    []FinancialTransaction
		wantErr error
	}{
		{
			name: "批量插入成功",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `financial_transactions` .*").
					WillReturnResult(sqlmock.NewResult(1, 2))
				return mockDB
			},
			txns: []FinancialTransaction{
				{Type: 1, Amount: 100000, Category: "order_subtotal", OrderId: 1},
				{Type: 1, Amount: 10000, Category: "shipping_fee", OrderId: 1},
			},
		},
		{
			name: "空列表_不访问数据库",
			mock: func(t *testing.T) *sql.DB {
				mockDB, _, err := sqlmock.New()
				require.NoError(t, err)
				return mockDB
			},
		},
		{
			name: "数据库错误",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `financial_transactions` .*").
					WillReturnError(errors.New("数据库错误"))
				return mockDB
			},
			txns:    []FinancialTransaction{{Type: 1, Amount: 1, Category: "order_subtotal", OrderId: 1}},
			wantErr: errors.New("数据库错误"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewTransactionGORMDAO(newMockGORM(t, tc.mock(t)))
			err := d.Insert(context.Background(), tc.txns)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestTransactionDAO_FindByOrderID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "type", "amount", "category", "order_id"}).
		AddRow(1, 1, 100000, "order_subtotal", 7).
		AddRow(2, 1, 10000, "shipping_fee", 7)
	mock.ExpectQuery("SELECT \\* FROM `financial_transactions` WHERE order_id = \\? ORDER BY id ASC").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	res, err := NewTransactionGORMDAO(newMockGORM(t, mockDB)).FindByOrderID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(100000), res[0].Amount)
	assert.Equal(t, "shipping_fee", res[1].Category)
}
