//go:build windows

// Package wincred 通过 Windows Credential Manager 存取 generic credential。
// target 名与 zalando/go-keyring 一致（service:user），两者写入的条目可以互读。
package wincred

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/danieljoos/wincred"
	"golang.org/x/sys/windows"
	"golang.org/x/text/encoding/unicode"

	"github.com/zx06/xkeyring/internal/backend"
)

// Windows 对 CredentialBlob 的上限
const maxBlobSize = 2560

// rawBlobComment 标记由 Set 写入的条目：它们的 blob 是调用方给的原始字节，读取时不做任何转换。
const rawBlobComment = "xkeyring:raw"

// Error 是 Credential Manager 调用失败时的原生错误。
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errno 返回 Win32 错误码。
func (e *Error) Errno() (windows.Errno, bool) {
	var errno windows.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

type Client struct{}

func New() *Client {
	return &Client{}
}

func targetName(service, user string) string {
	return service + ":" + user
}

func (c *Client) Get(service, user string) ([]byte, error) {
	cred, err := wincred.GetGenericCredential(targetName(service, user))
	if err != nil {
		return nil, classify("get", err)
	}
	return decodeBlob(cred.CredentialBlob, cred.Comment), nil
}

func (c *Client) Set(service, user string, secret []byte) error {
	if len(secret) > maxBlobSize {
		return &Error{Op: "set", Err: windows.ERROR_INVALID_PARAMETER}
	}
	cred := wincred.NewGenericCredential(targetName(service, user))
	cred.UserName = user
	cred.Comment = rawBlobComment
	cred.CredentialBlob = secret
	cred.Persist = wincred.PersistLocalMachine
	if err := cred.Write(); err != nil {
		return classify("set", err)
	}
	return nil
}

func (c *Client) Delete(service, user string) error {
	cred, err := wincred.GetGenericCredential(targetName(service, user))
	if err != nil {
		return classify("delete", err)
	}
	if err := cred.Delete(); err != nil {
		return classify("delete", err)
	}
	return nil
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, wincred.ErrElementNotFound):
		return backend.ErrNotFound
	case errors.Is(err, windows.ERROR_NO_SUCH_LOGON_SESSION):
		// 没有登录会话（服务账户等）时 Credential Manager 不可用
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}
	return &Error{Op: op, Err: err}
}

// decodeBlob 处理 cmdkey 等工具写入的 UTF-16LE blob（每个 ASCII 字符后跟一个 0 字节）。
// 带 rawBlobComment 的条目和其余内容原样返回，由上层做 UTF-8 校验。
func decodeBlob(blob []byte, comment string) []byte {
	if comment == rawBlobComment || !looksUTF16LE(blob) {
		return blob
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(blob)
	if err != nil || !utf8.Valid(out) {
		return blob
	}
	return out
}

func looksUTF16LE(blob []byte) bool {
	if len(blob) < 2 || len(blob)%2 != 0 {
		return false
	}
	if bytes.IndexByte(blob, 0) < 0 {
		return false
	}
	for i := 1; i < len(blob); i += 2 {
		if blob[i] != 0 {
			return false
		}
	}
	return true
}
