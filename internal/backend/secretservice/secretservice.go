//go:build linux

// Package secretservice 通过 freedesktop Secret Service（D-Bus）存取凭据。
// 读写走 zalando/go-keyring；是否有服务在总线上由本包直接用 godbus 探测。
package secretservice

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	dbus "github.com/godbus/dbus/v5"
	"github.com/zalando/go-keyring"

	"github.com/zx06/xkeyring/internal/backend"
)

const busName = "org.freedesktop.secrets"

// Error 是 Secret Service 调用失败时的原生错误。
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if name := e.Name(); name != "" {
		if msg := e.Err.Error(); msg != name {
			return fmt.Sprintf("%s: %s: %s", e.Op, name, msg)
		}
		return fmt.Sprintf("%s: %s", e.Op, name)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Name 返回 D-Bus 错误名，例如 org.freedesktop.Secret.Error.IsLocked。
// 底层错误不是 D-Bus 错误时返回空串。
func (e *Error) Name() string {
	var de dbus.Error
	if errors.As(e.Err, &de) {
		return de.Name
	}
	var dep *dbus.Error
	if errors.As(e.Err, &dep) && dep != nil {
		return dep.Name
	}
	return ""
}

// Client 是 Secret Service 后端。零值不可用，使用 New。
type Client struct {
	ping      func() error
	available atomic.Bool
}

func New() *Client {
	return &Client{ping: pingSessionBus}
}

func (c *Client) Get(service, user string) ([]byte, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	v, err := keyring.Get(service, user)
	if err != nil {
		return nil, classify("get", err)
	}
	return []byte(v), nil
}

func (c *Client) Set(service, user string, secret []byte) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := keyring.Set(service, user, string(secret)); err != nil {
		return classify("set", err)
	}
	return nil
}

func (c *Client) Delete(service, user string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := keyring.Delete(service, user); err != nil {
		return classify("delete", err)
	}
	return nil
}

// ready 只缓存成功的探测结果：守护进程可能稍后才被拉起。
func (c *Client) ready() error {
	if c.available.Load() {
		return nil
	}
	if err := c.ping(); err != nil {
		return err
	}
	c.available.Store(true)
	return nil
}

func classify(op string, err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return backend.ErrNotFound
	}
	return &Error{Op: op, Err: err}
}

func pingSessionBus() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}
	bus := conn.BusObject()

	var owned bool
	if err := bus.Call("org.freedesktop.DBus.NameHasOwner", 0, busName).Store(&owned); err != nil {
		return &Error{Op: "ping", Err: err}
	}
	if owned {
		return nil
	}

	var names []string
	if err := bus.Call("org.freedesktop.DBus.ListActivatableNames", 0).Store(&names); err != nil {
		return &Error{Op: "ping", Err: err}
	}
	if slices.Contains(names, busName) {
		return nil
	}
	return fmt.Errorf("%w: %s is not provided on the session bus", backend.ErrUnavailable, busName)
}
