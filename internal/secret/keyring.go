package secret

import (
	"fmt"
	"strings"

	"github.com/zx06/xkeyring/pkg/keyring"
)

// DefaultService 是引用中省略 service 时使用的 keyring service name。
const DefaultService = "xkeyring"

// parseKeyringRef 解析 keyring: 之后的部分。
//
//	password              → (defaultService, password)
//	prod/db_password      → (prod, db_password)
//	svc/nested/account    → (svc, nested/account)
func parseKeyringRef(ref, defaultService string) (service, user string, err error) {
	if ref == "" {
		return "", "", fmt.Errorf("empty keyring reference")
	}
	if defaultService == "" {
		defaultService = DefaultService
	}
	service, user, found := strings.Cut(ref, "/")
	if !found {
		return defaultService, ref, nil
	}
	if service == "" || user == "" {
		return "", "", fmt.Errorf("invalid keyring reference %q: want service/user", ref)
	}
	return service, user, nil
}

func newEntry(service, user string, store keyring.Store) *keyring.Entry {
	if store == nil {
		return keyring.NewEntry(service, user)
	}
	return keyring.NewEntry(service, user, keyring.WithStore(store))
}
