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

func TestProductDAO_IncrStock(t *testing.T) {
	testCases := []struct {
		name         string
		mock         func(t *testing.T) *sql.DB
		id           int64
		delta        int64
		wantAffected int64
		wantErr      error
	}{
		{
			name: "自增成功",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `products` SET `stock`=stock \\+ \\?,`utime`=\\? WHERE id = \\?").
					WithArgs(int64(2), sqlmock.AnyArg(), int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			id:           1,
			delta:        2,
			wantAffected: 1,
		},
		{
			name: "商品不存在",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `products` .*").
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
			id:           404,
			delta:        1,
			wantAffected: 0,
		},
		{
			name: "数据库错误",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("UPDATE `products` .*").
					WillReturnError(errors.New("数据库错误"))
				return mockDB
			},
			id:      1,
			delta:   1,
			wantErr: errors.New("数据库错误"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := gorm.Open(gormMysql.New(gormMysql.Config{
				Conn:                      tc.mock(t),
				SkipInitializeWithVersion: true,
			}), &gorm.Config{
				DisableAutomaticPing:   true,
				SkipDefaultTransaction: true,
			})
			require.NoError(t, err)
			affected, err := NewProductGORMDAO(db).IncrStock(context.Background(), tc.id, tc.delta)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantAffected, affected)
		})
	}
}
