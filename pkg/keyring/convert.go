package keyring

import (
	stderrors "errors"

	"github.com/zx06/xkeyring/internal/backend"
	"github.com/zx06/xkeyring/internal/utf8text"
)

// 各平台原生错误的标签；当前构建实际使用哪一个由 platform_*.go 决定。
type platform struct {
	name  string
	label string
}

var (
	secretService = platform{name: "secret-service", label: "Secret Service Error"}
	macKeychain   = platform{name: "keychain", label: "Mac Os Keychain Error"}
	windowsVault  = platform{name: "wincred", label: "Windows Vault Error"}
)

func newBackendError(p platform, cause error) *Error {
	return &Error{kind: KindBackend, label: p.label, cause: cause}
}

// FromBytesError 把原始字节的 UTF-8 解码失败转换为 KindInvalidEncoding。err 为 nil 时返回 nil。
func FromBytesError(err *utf8text.BytesError) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindInvalidEncoding, label: labelParse, cause: err}
}

// FromTextError 把已有文本的 UTF-8 校验失败转换为 KindInvalidEncoding。err 为 nil 时返回 nil。
func FromTextError(err *utf8text.Error) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindInvalidEncoding, label: labelUnicode, cause: err}
}

// convert 把 Store 返回的错误映射为 *Error；err 为 nil 时返回 nil。
func convert(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if ke, ok := As(err); ok {
		return ke
	}
	var bytesErr *utf8text.BytesError
	var textErr *utf8text.Error
	switch {
	case stderrors.Is(err, backend.ErrNotFound):
		return ErrNoPassword
	case stderrors.Is(err, backend.ErrUnavailable):
		return ErrNoBackend
	case stderrors.As(err, &bytesErr):
		return FromBytesError(bytesErr)
	case stderrors.As(err, &textErr):
		return FromTextError(textErr)
	}
	return fromNative(foreignOp(op), err)
}

// foreignOp 标出失败来自调用方注入的 Store，而不是平台后端本身。
// 平台适配器总是返回自己的原生错误，走不到这里。
func foreignOp(op string) string {
	return "custom store " + op
}
