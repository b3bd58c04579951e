//go:build windows

package keyring

import (
	stderrors "errors"

	"github.com/zx06/xkeyring/internal/backend/wincred"
)

// BackendName 是当前构建编译进来的后端。
const BackendName = "wincred"

// FromBackend 把 Credential Manager 的原生错误转换为 KindBackend。err 为 nil 时返回 nil。
func FromBackend(err *wincred.Error) *Error {
	if err == nil {
		return nil
	}
	return newBackendError(windowsVault, err)
}

func platformStore() Store {
	return wincred.New()
}

func fromNative(op string, err error) *Error {
	var wErr *wincred.Error
	if stderrors.As(err, &wErr) {
		return FromBackend(wErr)
	}
	return FromBackend(&wincred.Error{Op: op, Err: err})
}
