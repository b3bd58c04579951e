//go:build !linux && !windows && !(darwin && cgo)

package keyring

// BackendName 是当前构建编译进来的后端。
const BackendName = "none"

func platformStore() Store {
	return nil
}

// 没有原生错误类型可以承载失败，KindBackend 在这类目标上不可达。
func fromNative(string, error) *Error {
	return ErrNoBackend
}
