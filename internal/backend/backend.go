// Package backend 定义各平台凭据后端共用的哨兵错误，以及一个内存实现。
//
// 平台适配器（secretservice / keychain / wincred）只返回三类错误：
// ErrNotFound、ErrUnavailable，或者该平台自己的原生错误类型。
package backend

import "errors"

var (
	// ErrNotFound 表示 service/user 下没有已存储的凭据。
	ErrNotFound = errors.New("secret not found")
	// ErrUnavailable 表示当前主机上无法连接到任何凭据存储子系统。
	ErrUnavailable = errors.New("secret storage unavailable")
)
