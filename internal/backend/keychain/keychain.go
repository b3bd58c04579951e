//go:build darwin && cgo

// Package keychain 通过 macOS Security framework 把凭据存为 generic password。
//
// 条目属性：
//   - Service: 调用方给出的 service
//   - Account: 调用方给出的 user
//   - 不同步到 iCloud，仅在设备解锁时可读
package keychain

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"

	"github.com/zx06/xkeyring/internal/backend"
)

// Error 是 Keychain 调用失败时的原生错误。
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Status 返回 Security framework 的 OSStatus。
func (e *Error) Status() (gokeychain.Error, bool) {
	var status gokeychain.Error
	if errors.As(e.Err, &status) {
		return status, true
	}
	return 0, false
}

type Client struct{}

func New() *Client {
	return &Client{}
}

func (c *Client) Get(service, user string) ([]byte, error) {
	data, err := gokeychain.GetGenericPassword(service, user, "", "")
	if err != nil {
		return nil, classify("get", err)
	}
	// 找不到条目时 go-keychain 返回 nil, nil
	if data == nil {
		return nil, backend.ErrNotFound
	}
	return data, nil
}

func (c *Client) Set(service, user string, secret []byte) error {
	item := gokeychain.NewGenericPassword(service, user, "", secret, "")
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)

	err := gokeychain.AddItem(item)
	if errors.Is(err, gokeychain.ErrorDuplicateItem) {
		query := gokeychain.NewItem()
		query.SetSecClass(gokeychain.SecClassGenericPassword)
		query.SetService(service)
		query.SetAccount(user)
		update := gokeychain.NewItem()
		update.SetData(secret)
		err = gokeychain.UpdateItem(query, update)
	}
	if err != nil {
		return classify("set", err)
	}
	return nil
}

func (c *Client) Delete(service, user string) error {
	if err := gokeychain.DeleteGenericPasswordItem(service, user); err != nil {
		return classify("delete", err)
	}
	return nil
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, gokeychain.ErrorItemNotFound):
		return backend.ErrNotFound
	case errors.Is(err, gokeychain.ErrorNotAvailable), errors.Is(err, gokeychain.ErrorNoSuchKeychain):
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}
	return &Error{Op: op, Err: err}
}
