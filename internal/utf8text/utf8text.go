// Package utf8text 在字节与文本之间做 UTF-8 校验，失败时给出带位置的错误。
package utf8text

import (
	"fmt"
	"unicode/utf8"
)

// Error 描述一段文本中第一个非法的 UTF-8 位置。
// ErrorLen 为 0 表示输入在一个多字节序列中途结束。
type Error struct {
	ValidUpTo int
	ErrorLen  int
}

func (e *Error) Error() string {
	if e.ErrorLen > 0 {
		return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
	}
	return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
}

// BytesError 是把原始字节解码为文本时的失败，保留原始字节。
type BytesError struct {
	Bytes []byte
	Err   *Error
}

func (e *BytesError) Error() string { return e.Err.Error() }

func (e *BytesError) Unwrap() error { return e.Err }

// Decode 把 b 转为 string；b 不是合法 UTF-8 时返回 *BytesError。
func Decode(b []byte) (string, *BytesError) {
	if e := scan(b); e != nil {
		return "", &BytesError{Bytes: b, Err: e}
	}
	return string(b), nil
}

// Validate 校验已经是 string 的文本（例如后端直接返回的字符串）。
func Validate(s string) *Error {
	return scan([]byte(s))
}

func scan(b []byte) *Error {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			i += size
			continue
		}
		return &Error{ValidUpTo: i, ErrorLen: invalidLen(b[i:])}
	}
	return nil
}

// invalidLen 返回非法序列的最长合法前缀长度（至少 1）；输入截断时返回 0。
func invalidLen(rest []byte) int {
	n := 1
	for n < len(rest) && n < utf8.UTFMax && !utf8.FullRune(rest[:n]) {
		n++
	}
	if !utf8.FullRune(rest[:n]) {
		return 0
	}
	if n > 1 {
		return n - 1
	}
	return 1
}
