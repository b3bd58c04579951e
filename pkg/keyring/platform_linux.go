//go:build linux

package keyring

import (
	stderrors "errors"

	"github.com/zx06/xkeyring/internal/backend/secretservice"
)

// BackendName 是当前构建编译进来的后端。
const BackendName = "secret-service"

// FromBackend 把 Secret Service 的原生错误转换为 KindBackend。err 为 nil 时返回 nil。
func FromBackend(err *secretservice.Error) *Error {
	if err == nil {
		return nil
	}
	return newBackendError(secretService, err)
}

func platformStore() Store {
	return secretservice.New()
}

func fromNative(op string, err error) *Error {
	var ssErr *secretservice.Error
	if stderrors.As(err, &ssErr) {
		return FromBackend(ssErr)
	}
	return FromBackend(&secretservice.Error{Op: op, Err: err})
}
