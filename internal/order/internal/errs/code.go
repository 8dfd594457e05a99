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

package errs

var (
	SystemError       = ErrorCode{Code: 521001, Msg: "系统错误"}
	OrderNotFound     = ErrorCode{Code: 521002, Msg: "订单不存在"}
	InvalidStatus     = ErrorCode{Code: 521003, Msg: "目标状态非法"}
	OrderConflict     = ErrorCode{Code: 521004, Msg: "订单已被修改, 请刷新后重试"}
	DependencyFailure = ErrorCode{Code: 521005, Msg: "订单履约失败, 请稍后重试"}
	DuplicatedRequest = ErrorCode{Code: 521006, Msg: "重复请求"}
	InvalidOrder      = ErrorCode{Code: 521007, Msg: "订单信息非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
