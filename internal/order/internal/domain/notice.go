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

package domain

import "fmt"

// NoticeType 与通知模块的类型取值一致
type NoticeType string

const (
	NoticeTypeInfo    NoticeType = "info"
	NoticeTypeSuccess NoticeType = "success"
	NoticeTypeError   NoticeType = "error"
)

type Notice struct {
	Title   string
	Message string
	Type    NoticeType
}

type noticeTemplate struct {
	title   string
	message string
	typ     NoticeType
}

var noticeTemplates = map[Status]noticeTemplate{
	StatusConfirmed: {title: "订单已确认", message: "您的订单 %s 已确认, 我们正在安排备货", typ: NoticeTypeInfo},
	StatusPreparing: {title: "订单备货中", message: "您的订单 %s 正在备货", typ: NoticeTypeInfo},
	StatusShipping:  {title: "订单配送中", message: "您的订单 %s 已发出, 正在配送", typ: NoticeTypeInfo},
	StatusDelivered: {title: "订单已送达", message: "您的订单 %s 已送达, 感谢您的惠顾", typ: NoticeTypeSuccess},
	StatusCancelled: {title: "订单已取消", message: "您的订单 %s 已取消", typ: NoticeTypeError},
}

// NoticeFor 返回目标状态对应的通知文案, 没有文案的状态不发通知
func NoticeFor(target Status, orderSN string) (Notice, bool) {
	tpl, ok := noticeTemplates[target]
	if !ok {
		return Notice{}, false
	}
	return Notice{
		Title:   tpl.title,
		Message: fmt.Sprintf(tpl.message, orderSN),
		Type:    tpl.typ,
	}, true
}
