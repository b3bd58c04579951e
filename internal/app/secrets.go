package app

import (
	"log/slog"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
	"github.com/zx06/xkeyring/pkg/keyring"
)

// Target 定位一条凭据。
type Target struct {
	Service string
	User    string
}

func (t Target) details() map[string]any {
	return map[string]any{"service": t.Service, "user": t.User}
}

func (t Target) validate() *errors.XError {
	if t.Service == "" {
		return errors.New(errors.CodeCfgInvalid, "service is required", nil)
	}
	if t.User == "" {
		return errors.New(errors.CodeCfgInvalid, "user is required", nil)
	}
	return nil
}

// Secrets 是 CLI 与 MCP 共用的凭据操作；失败统一转换为 XError。
// 日志只记录 service/user/kind，不记录密码。
type Secrets struct {
	Store  keyring.Store // nil 使用 keyring.DefaultStore
	Logger *slog.Logger
}

func (s Secrets) entry(t Target) *keyring.Entry {
	if s.Store == nil {
		return keyring.NewEntry(t.Service, t.User)
	}
	return keyring.NewEntry(t.Service, t.User, keyring.WithStore(s.Store))
}

func (s Secrets) logger() *slog.Logger {
	if s.Logger == nil {
		return log.Discard()
	}
	return s.Logger
}

func (s Secrets) fail(op string, t Target, ke *keyring.Error) *errors.XError {
	s.logger().Debug("keyring operation failed", "op", op, "service", t.Service, "user", t.User, "kind", ke.Kind().String())
	return errors.FromKeyring(ke, t.details())
}

func (s Secrets) Set(t Target, password string) *errors.XError {
	if xe := t.validate(); xe != nil {
		return xe
	}
	if ke := s.entry(t).SetPassword(password); ke != nil {
		return s.fail("set", t, ke)
	}
	s.logger().Debug("secret stored", "service", t.Service, "user", t.User)
	return nil
}

func (s Secrets) Get(t Target) (string, *errors.XError) {
	if xe := t.validate(); xe != nil {
		return "", xe
	}
	res := keyring.Collect(s.entry(t).Password())
	if !res.IsOK() {
		return "", s.fail("get", t, res.Err())
	}
	return res.Value(), nil
}

// Exists 报告凭据是否存在；只有 NoPassword 被视为 false，其他失败原样返回。
func (s Secrets) Exists(t Target) (bool, *errors.XError) {
	if xe := t.validate(); xe != nil {
		return false, xe
	}
	_, ke := s.entry(t).Secret()
	switch {
	case ke == nil:
		return true, nil
	case ke.Kind() == keyring.KindNoPassword:
		return false, nil
	default:
		return false, s.fail("exists", t, ke)
	}
}

func (s Secrets) Delete(t Target) *errors.XError {
	if xe := t.validate(); xe != nil {
		return xe
	}
	if ke := s.entry(t).DeletePassword(); ke != nil {
		return s.fail("delete", t, ke)
	}
	s.logger().Debug("secret deleted", "service", t.Service, "user", t.User)
	return nil
}
