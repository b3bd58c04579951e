package secret

import (
	"strings"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/pkg/keyring"
)

const keyringPrefix = "keyring:"

// Options 控制 secret 解析行为。
type Options struct {
	AllowPlaintext bool          // 是否允许明文（默认 false）
	Service        string        // 引用未写 service 时使用；空则为 DefaultService
	Store          keyring.Store // 可注入的存储（nil 则用 keyring.DefaultStore）
}

// Resolve 解析 secret 值：
//  1. keyring:[service/]user → 从 keyring 读取
//  2. 否则若为明文且允许明文 → 直接返回
//  3. 否则报错
func Resolve(raw string, opts Options) (string, *errors.XError) {
	if strings.HasPrefix(raw, keyringPrefix) {
		ref := strings.TrimPrefix(raw, keyringPrefix)
		service, user, err := parseKeyringRef(ref, opts.Service)
		if err != nil {
			return "", errors.Wrap(errors.CodeCfgInvalid, "invalid keyring reference", map[string]any{"ref": ref}, err)
		}
		val, ke := newEntry(service, user, opts.Store).Password()
		if ke != nil {
			return "", errors.FromKeyring(ke, map[string]any{"service": service, "user": user})
		}
		return val, nil
	}
	// 明文
	if opts.AllowPlaintext {
		return raw, nil
	}
	return "", errors.New(errors.CodePlaintextDenied, "plaintext secret not allowed; use keyring: reference or enable --allow-plaintext", nil)
}

// IsKeyringRef 判断值是否为 keyring 引用。
func IsKeyringRef(s string) bool {
	return strings.HasPrefix(s, keyringPrefix)
}
