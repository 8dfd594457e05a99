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
	SystemError       = ErrorCode{Code: 520001, Msg: "系统错误"}
	AccountNotFound   = ErrorCode{Code: 520002, Msg: "积分账户不存在"}
	InvalidMultiplier = ErrorCode{Code: 520003, Msg: "等级倍率非法"}
	PointsNotEnough   = ErrorCode{Code: 520004, Msg: "积分不足"}
	DuplicatedRequest = ErrorCode{Code: 520005, Msg: "重复请求"}
	InvalidRequest    = ErrorCode{Code: 520006, Msg: "请求参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
