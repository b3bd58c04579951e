// Package keyring 提供跨平台的凭据存取：调用方按 service/user 存、取、删密码，
// 实际的密钥由宿主系统的安全存储保管。
//
// 每个构建目标只编译一种后端：
//   - linux: freedesktop Secret Service（D-Bus）
//   - darwin（cgo）: macOS Keychain
//   - windows: Credential Manager
//
// 其他目标没有后端，所有操作都返回 ErrNoBackend。
//
// 所有失败都以 *Error 返回。它的 Kind 区分失败类别，包装型错误通过 Unwrap/Cause
// 暴露一跳的底层错误（平台原生错误或 UTF-8 解码错误），可以用 errors.As 继续取出
// D-Bus 错误名、OSStatus 或 Win32 errno 等细节。
package keyring

import (
	stderrors "errors"
	"fmt"
)

// Kind 是 *Error 的类别。集合是封闭的。
type Kind uint8

const (
	// KindBackend 表示平台安全存储本身失败；原生错误为其 cause。
	KindBackend Kind = iota + 1
	// KindNoBackend 表示当前主机/构建没有可用的安全存储。
	KindNoBackend
	// KindNoPassword 表示目标凭据不存在。
	KindNoPassword
	// KindInvalidEncoding 表示取回的数据不是合法的 UTF-8 文本。
	KindInvalidEncoding
)

// Kinds 返回全部类别，顺序固定。
func Kinds() []Kind {
	return []Kind{KindBackend, KindNoBackend, KindNoPassword, KindInvalidEncoding}
}

func (k Kind) String() string {
	switch k {
	case KindBackend:
		return "backend"
	case KindNoBackend:
		return "no_backend"
	case KindNoPassword:
		return "no_password"
	case KindInvalidEncoding:
		return "invalid_encoding"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

const (
	msgNoBackend  = "Keyring error: No Backend Found"
	msgNoPassword = "Keyring Error: No Password Found"

	labelParse   = "Keyring Parse Error"
	labelUnicode = "Keyring Unicode Error"
)

var (
	// ErrNoBackend 是 KindNoBackend 的唯一取值。
	ErrNoBackend = &Error{kind: KindNoBackend}
	// ErrNoPassword 是 KindNoPassword 的唯一取值。
	ErrNoPassword = &Error{kind: KindNoPassword}
)

// Error 是本包所有公开操作唯一的失败类型，构造后不可变。
// 包装型错误只能通过 FromBackend / FromBytesError / FromTextError 得到。
type Error struct {
	kind  Kind
	label string
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.kind {
	case KindNoBackend:
		return msgNoBackend
	case KindNoPassword:
		return msgNoPassword
	}
	return fmt.Sprintf("%s: %v", e.label, e.cause)
}

// Unwrap 返回被包装的底层错误；NoBackend / NoPassword 返回 nil。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Cause 与 Unwrap 相同，给不依赖 errors 包的诊断工具使用。
func (e *Error) Cause() error { return e.Unwrap() }

func (e *Error) Kind() Kind {
	if e == nil {
		return 0
	}
	return e.kind
}

// Is 让 errors.Is(err, ErrNoPassword) 之类的判断按 Kind 匹配。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.cause == nil && t.kind == e.kind
}

// As 在错误链中查找 *Error。
func As(err error) (*Error, bool) {
	var ke *Error
	if stderrors.As(err, &ke) {
		return ke, true
	}
	return nil, false
}

// KindOf 返回错误链中 *Error 的 Kind；链中没有 *Error 时返回 0。
func KindOf(err error) Kind {
	if ke, ok := As(err); ok {
		return ke.Kind()
	}
	return 0
}

// RootCause 沿 Unwrap 链走到最底层的错误。
func RootCause(err error) error {
	for err != nil {
		next := stderrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
