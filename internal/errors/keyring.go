package errors

import (
	"maps"

	"github.com/zx06/xkeyring/pkg/keyring"
)

// FromKeyring 把 *keyring.Error 映射为带稳定错误码的 XError。
// details 会被复制，并补上 kind。
func FromKeyring(ke *keyring.Error, details map[string]any) *XError {
	if ke == nil {
		return nil
	}
	d := make(map[string]any, len(details)+1)
	maps.Copy(d, details)
	d["kind"] = ke.Kind().String()
	return Wrap(CodeForKind(ke.Kind()), ke.Error(), d, ke)
}

// CodeForKind 返回 keyring 失败类别对应的稳定错误码。
func CodeForKind(k keyring.Kind) Code {
	switch k {
	case keyring.KindNoPassword:
		return CodeSecretNotFound
	case keyring.KindNoBackend:
		return CodeBackendUnavailable
	case keyring.KindBackend:
		return CodeBackendFailure
	case keyring.KindInvalidEncoding:
		return CodeInvalidEncoding
	default:
		return CodeInternal
	}
}
