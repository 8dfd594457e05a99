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
	"github.com/go-sql-driver/mysql"
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

var accountColumns = []string{"id", "customer_id", "points", "tier", "total_spent", "order_count", "last_order_date", "version", "ctime", "utime"}

func TestLoyaltyDAO_LockOrCreateAccount(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		want    LoyaltyAccount
		wantErr error
	}{
		{
			name: "已存在_直接加锁返回",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectQuery("SELECT \\* FROM `loyalty_accounts` WHERE customer_id = \\? .* FOR UPDATE").
					WillReturnRows(sqlmock.NewRows(accountColumns).
						AddRow(1, 7, 11, "BRONZE", 110000, 1, 100, 2, 1, 1))
				return mockDB
			},
			want: LoyaltyAccount{Id: 1, CustomerId: 7, Points: 11, Tier: "BRONZE", TotalSpent: 110000,
				OrderCount: 1, LastOrderDate: 100, Version: 2, Ctime: 1, Utime: 1},
		},
		{
			name: "不存在_创建后加锁",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectQuery("SELECT \\* FROM `loyalty_accounts` WHERE customer_id = \\? .* FOR UPDATE").
					WillReturnRows(sqlmock.NewRows(accountColumns))
				mock.ExpectExec("INSERT INTO `loyalty_accounts` .*").
					WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectQuery("SELECT \\* FROM `loyalty_accounts` WHERE customer_id = \\? .* FOR UPDATE").
					WillReturnRows(sqlmock.NewRows(accountColumns).
						AddRow(3, 7, 0, "BRONZE", 0, 0, 0, 1, 1, 1))
				return mockDB
			},
			want: LoyaltyAccount{Id: 3, CustomerId: 7, Tier: "BRONZE", Version: 1, Ctime: 1, Utime: 1},
		},
		{
			name: "查询失败",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectQuery("SELECT \\* FROM `loyalty_accounts` .*").
					WillReturnError(errors.New("mock db error"))
				return mockDB
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewLoyaltyGORMDAO(newMockGORM(t, tc.mock(t)))
			acc, err := d.LockOrCreateAccount(context.Background(), 7, "BRONZE")
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, acc)
		})
	}
}

func TestLoyaltyDAO_InsertPointTransaction(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		wantID  int64
		wantErr error
	}{
		{
			name: "插入成功",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `point_transactions` .*").
					WillReturnResult(sqlmock.NewResult(5, 1))
				return mockDB
			},
			wantID: 5,
		},
		{
			name: "唯一索引冲突",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `point_transactions` .*").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				return mockDB
			},
			wantErr: ErrDuplicatedPointTransaction,
		},
		{
			name: "其他错误",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("INSERT INTO `point_transactions` .*").
					WillReturnError(errors.New("mock db error"))
				return mockDB
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewLoyaltyGORMDAO(newMockGORM(t, tc.mock(t)))
			id, err := d.InsertPointTransaction(context.Background(), PointTransaction{
				CustomerId: 7,
				Key:        "order:1:v2",
				Amount:     11,
				Type:       "EARNED",
			})
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestLoyaltyDAO_IncrAccount(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		wantErr error
	}{
		{
			name: "原子累加",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `loyalty_accounts` SET .*`points`=points \\+ \\?.*WHERE customer_id = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
		},
		{
			name: "主记录不存在",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `loyalty_accounts` SET .*").
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
			wantErr: ErrRecordNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewLoyaltyGORMDAO(newMockGORM(t, tc.mock(t)))
			err := d.IncrAccount(context.Background(), 7, AccountDelta{
				Points:        11,
				TotalSpent:    110000,
				OrderCount:    1,
				Tier:          "BRONZE",
				LastOrderDate: 100,
			})
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestLoyaltyDAO_DecrPoints(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		wantOK  bool
		wantErr error
	}{
		{
			name: "扣减成功",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `loyalty_accounts` SET .* WHERE customer_id = \\? AND points >= \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			wantOK: true,
		},
		{
			name: "余额不足",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `loyalty_accounts` SET .* WHERE customer_id = \\? AND points >= \\?").
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewLoyaltyGORMDAO(newMockGORM(t, tc.mock(t)))
			ok, err := d.DecrPoints(context.Background(), 7, 5)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}
