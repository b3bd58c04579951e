package errors

import (
	stderrors "errors"
	"fmt"
)

// XError 是 CLI/MCP 边界上的结构化错误：稳定的 Code、可读的 Message、可选的 Details。
// cause 不会被序列化，只用于 errors.Is/As 与日志。
type XError struct {
	Code    Code           `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	cause   error
}

func (e *XError) Error() string {
	if e == nil {
		return ""
	}
	// FromKeyring 直接用 cause 的文本做 Message，避免重复输出。
	if e.cause == nil || e.cause.Error() == e.Message {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
}

func (e *XError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Cause 返回被包装的错误（一跳）。
func (e *XError) Cause() error { return e.Unwrap() }

func New(code Code, message string, details map[string]any) *XError {
	return &XError{Code: code, Message: message, Details: details}
}

func Wrap(code Code, message string, details map[string]any, cause error) *XError {
	return &XError{Code: code, Message: message, Details: details, cause: cause}
}

func As(err error) (*XError, bool) {
	var xe *XError
	if stderrors.As(err, &xe) {
		return xe, true
	}
	return nil, false
}

func AsOrWrap(err error) *XError {
	if xe, ok := As(err); ok {
		return xe
	}
	return Wrap(CodeInternal, err.Error(), nil, err)
}

// HasCode 报告错误链中是否有 Code 为 code 的 XError。
func HasCode(err error, code Code) bool {
	xe, ok := As(err)
	return ok && xe.Code == code
}
