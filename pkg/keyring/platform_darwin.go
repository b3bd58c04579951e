//go:build darwin && cgo

package keyring

import (
	stderrors "errors"

	"github.com/zx06/xkeyring/internal/backend/keychain"
)

// BackendName 是当前构建编译进来的后端。
const BackendName = "keychain"

// FromBackend 把 Keychain 的原生错误转换为 KindBackend。err 为 nil 时返回 nil。
func FromBackend(err *keychain.Error) *Error {
	if err == nil {
		return nil
	}
	return newBackendError(macKeychain, err)
}

func platformStore() Store {
	return keychain.New()
}

func fromNative(op string, err error) *Error {
	var kcErr *keychain.Error
	if stderrors.As(err, &kcErr) {
		return FromBackend(kcErr)
	}
	return FromBackend(&keychain.Error{Op: op, Err: err})
}
