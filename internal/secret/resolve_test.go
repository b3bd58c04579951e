package secret

import (
	"testing"

	"github.com/zx06/xkeyring/internal/backend"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/pkg/keyring"
)

func newStore(t *testing.T, entries map[[2]string]string) *backend.Memory {
	t.Helper()
	store := backend.NewMemory()
	for k, v := range entries {
		if err := store.Set(k[0], k[1], []byte(v)); err != nil {
			t.Fatalf("seed %v: %v", k, err)
		}
	}
	return store
}

// =============================================================================
// parseKeyringRef 单元测试
// =============================================================================

func TestParseKeyringRef(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		defService  string
		wantService string
		wantUser    string
		wantErr     bool
	}{
		{
			name:        "simple user",
			ref:         "password",
			wantService: DefaultService,
			wantUser:    "password",
		},
		{
			name:        "simple user with configured service",
			ref:         "password",
			defService:  "billing",
			wantService: "billing",
			wantUser:    "password",
		},
		{
			name:        "service and user",
			ref:         "prod/db_password",
			wantService: "prod",
			wantUser:    "db_password",
		},
		{
			name:        "nested user",
			ref:         "profiles/prod/mysql/readonly",
			wantService: "profiles",
			wantUser:    "prod/mysql/readonly",
		},
		{
			name:        "user with hyphen",
			ref:         "prod/my-password",
			wantService: "prod",
			wantUser:    "my-password",
		},
		{
			name:    "empty ref",
			ref:     "",
			wantErr: true,
		},
		{
			name:    "empty service",
			ref:     "/user",
			wantErr: true,
		},
		{
			name:    "empty user",
			ref:     "svc/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, user, err := parseKeyringRef(tt.ref, tt.defService)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseKeyringRef(%q) expected error, got nil", tt.ref)
				}
				return
			}
			if err != nil {
				t.Errorf("parseKeyringRef(%q) unexpected error: %v", tt.ref, err)
				return
			}
			if service != tt.wantService {
				t.Errorf("parseKeyringRef(%q) service = %q, want %q", tt.ref, service, tt.wantService)
			}
			if user != tt.wantUser {
				t.Errorf("parseKeyringRef(%q) user = %q, want %q", tt.ref, user, tt.wantUser)
			}
		})
	}
}

// =============================================================================
// Resolve
// =============================================================================

func TestResolve_KeyringRef(t *testing.T) {
	store := newStore(t, map[[2]string]string{{"prod", "db_password"}: "secret123"})

	val, xe := Resolve("keyring:prod/db_password", Options{Store: store})
	if xe != nil {
		t.Fatalf("unexpected err: %v", xe)
	}
	if val != "secret123" {
		t.Fatalf("val=%q, want %q", val, "secret123")
	}
}

func TestResolve_DefaultService(t *testing.T) {
	store := newStore(t, map[[2]string]string{{DefaultService, "token"}: "t0k"})

	val, xe := Resolve("keyring:token", Options{Store: store})
	if xe != nil {
		t.Fatalf("unexpected err: %v", xe)
	}
	if val != "t0k" {
		t.Fatalf("val=%q, want %q", val, "t0k")
	}
}

func TestResolve_DefaultKeyring(t *testing.T) {
	keyring.MockInit()
	if ke := keyring.NewEntry("svc", "acct").SetPassword("from-default"); ke != nil {
		t.Fatalf("SetPassword: %v", ke)
	}

	val, xe := Resolve("keyring:svc/acct", Options{})
	if xe != nil {
		t.Fatalf("unexpected err: %v", xe)
	}
	if val != "from-default" {
		t.Fatalf("val=%q", val)
	}
}

func TestResolve_KeyringNotFound(t *testing.T) {
	_, xe := Resolve("keyring:no_such", Options{Store: backend.NewMemory()})
	if xe == nil || xe.Code != errors.CodeSecretNotFound {
		t.Fatalf("expected XKR_SECRET_NOT_FOUND, got %v", xe)
	}
	if xe.Details["service"] != DefaultService || xe.Details["user"] != "no_such" {
		t.Fatalf("details=%v", xe.Details)
	}
	if xe.Message != "Keyring Error: No Password Found" {
		t.Fatalf("message=%q", xe.Message)
	}
}

func TestResolve_BackendUnavailable(t *testing.T) {
	store := backend.NewFailingMemory(backend.ErrUnavailable)
	_, xe := Resolve("keyring:svc/u", Options{Store: store})
	if xe == nil || xe.Code != errors.CodeBackendUnavailable {
		t.Fatalf("expected XKR_BACKEND_UNAVAILABLE, got %v", xe)
	}
}

func TestResolve_InvalidEncoding(t *testing.T) {
	store := backend.NewMemory()
	if err := store.Set("svc", "bin", []byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	_, xe := Resolve("keyring:svc/bin", Options{Store: store})
	if xe == nil || xe.Code != errors.CodeInvalidEncoding {
		t.Fatalf("expected XKR_INVALID_ENCODING, got %v", xe)
	}
}

func TestResolve_KeyringInvalidFormat(t *testing.T) {
	tests := []string{
		"keyring:", // 空引用
		"keyring:/user",
		"keyring:svc/",
	}
	for _, raw := range tests {
		_, xe := Resolve(raw, Options{Store: backend.NewMemory()})
		if xe == nil || xe.Code != errors.CodeCfgInvalid {
			t.Errorf("Resolve(%q): expected XKR_CFG_INVALID, got %v", raw, xe)
		}
	}
}

func TestResolve_SpecialCharacters(t *testing.T) {
	store := backend.NewMemory()
	specialPasswords := []string{
		"p@ssw0rd!",
		"pass#123$",
		"密码123",
		"пароль",
		"パスワード",
		"pass word",
		"pass\ttab",
		"",
	}

	for i, pw := range specialPasswords {
		user := string(rune('a' + i))
		if ke := newEntry("svc", user, store).SetPassword(pw); ke != nil {
			t.Fatalf("SetPassword(%q): %v", pw, ke)
		}
		val, xe := Resolve("keyring:svc/"+user, Options{Store: store})
		if xe != nil {
			t.Errorf("Resolve special password %q failed: %v", pw, xe)
			continue
		}
		if val != pw {
			t.Errorf("Resolve special password: got %q, want %q", val, pw)
		}
	}
}

func TestResolve_PlaintextAllowed(t *testing.T) {
	val, xe := Resolve("plaintext_password", Options{AllowPlaintext: true})
	if xe != nil {
		t.Fatalf("unexpected err: %v", xe)
	}
	if val != "plaintext_password" {
		t.Fatalf("val=%q", val)
	}
}

func TestResolve_PlaintextDenied(t *testing.T) {
	_, xe := Resolve("plaintext_password", Options{AllowPlaintext: false})
	if xe == nil || xe.Code != errors.CodePlaintextDenied {
		t.Fatalf("expected XKR_PLAINTEXT_DENIED, got %v", xe)
	}
}

func TestIsKeyringRef(t *testing.T) {
	if !IsKeyringRef("keyring:foo") {
		t.Fatal("expected true")
	}
	if IsKeyringRef("plaintext") {
		t.Fatal("expected false")
	}
}
