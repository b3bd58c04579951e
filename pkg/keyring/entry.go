package keyring

import (
	"sync"

	"github.com/zx06/xkeyring/internal/backend"
	"github.com/zx06/xkeyring/internal/utf8text"
)

// Store 是凭据存储的最小接口。平台后端与内存存储都实现它。
//
// 实现应当在凭据不存在时返回包装了 backend.ErrNotFound 的错误，
// 在存储本身不可用时返回包装了 backend.ErrUnavailable 的错误。
type Store interface {
	Get(service, user string) ([]byte, error)
	Set(service, user string, secret []byte) error
	Delete(service, user string) error
}

var (
	defaultMu    sync.RWMutex
	defaultStore = platformStore()
)

// DefaultStore 返回新 Entry 默认使用的存储；没有后端时返回 nil。
func DefaultStore() Store {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultStore
}

func setDefaultStore(s Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = s
}

// MockInit 把默认存储换成进程内存储，之后创建的 Entry 不再访问系统凭据库。
func MockInit() {
	setDefaultStore(backend.NewMemory())
}

// MockInitWithError 把默认存储换成所有操作都返回 err 的存储。
func MockInitWithError(err error) {
	setDefaultStore(backend.NewFailingMemory(err))
}

// Option 配置 Entry。
type Option func(*Entry)

// WithStore 指定 Entry 使用的存储。传入 nil 时所有操作返回 ErrNoBackend。
func WithStore(s Store) Option {
	return func(e *Entry) {
		e.store = s
	}
}

// Entry 定位一条凭据：service 下的 user。
type Entry struct {
	service string
	user    string
	store   Store
}

func NewEntry(service, user string, opts ...Option) *Entry {
	e := &Entry{service: service, user: user, store: DefaultStore()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Entry) Service() string { return e.service }
func (e *Entry) User() string    { return e.user }

// SetPassword 保存文本密码。password 必须是合法的 UTF-8。
func (e *Entry) SetPassword(password string) *Error {
	if err := utf8text.Validate(password); err != nil {
		return FromTextError(err)
	}
	return e.SetSecret([]byte(password))
}

// SetSecret 原样保存字节，不做编码检查。
func (e *Entry) SetSecret(secret []byte) *Error {
	if e.store == nil {
		return ErrNoBackend
	}
	return convert("set", e.store.Set(e.service, e.user, secret))
}

// Password 取回文本密码。存储中的字节不是合法 UTF-8 时返回 KindInvalidEncoding，
// cause 为 *utf8text.BytesError。
func (e *Entry) Password() (string, *Error) {
	secret, err := e.Secret()
	if err != nil {
		return "", err
	}
	password, decErr := utf8text.Decode(secret)
	if decErr != nil {
		return "", FromBytesError(decErr)
	}
	return password, nil
}

// Secret 取回原始字节。
func (e *Entry) Secret() ([]byte, *Error) {
	if e.store == nil {
		return nil, ErrNoBackend
	}
	secret, err := e.store.Get(e.service, e.user)
	if err != nil {
		return nil, convert("get", err)
	}
	return secret, nil
}

func (e *Entry) DeletePassword() *Error {
	if e.store == nil {
		return ErrNoBackend
	}
	return convert("delete", e.store.Delete(e.service, e.user))
}
