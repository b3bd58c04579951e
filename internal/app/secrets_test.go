package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xkeyring/internal/backend"
	"github.com/zx06/xkeyring/internal/errors"
)

func TestSecrets_Lifecycle(t *testing.T) {
	var logs bytes.Buffer
	s := Secrets{
		Store:  backend.NewMemory(),
		Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	target := Target{Service: "app", User: "alice"}

	ok, xe := s.Exists(target)
	require.Nil(t, xe)
	assert.False(t, ok)

	require.Nil(t, s.Set(target, "hunter2"))

	ok, xe = s.Exists(target)
	require.Nil(t, xe)
	assert.True(t, ok)

	got, xe := s.Get(target)
	require.Nil(t, xe)
	assert.Equal(t, "hunter2", got)

	require.Nil(t, s.Delete(target))

	_, xe = s.Get(target)
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeSecretNotFound, xe.Code)
	assert.Equal(t, "app", xe.Details["service"])
	assert.Equal(t, "no_password", xe.Details["kind"])

	assert.Contains(t, logs.String(), "kind=no_password")
	assert.False(t, strings.Contains(logs.String(), "hunter2"), "logs must not contain the secret")
}

func TestSecrets_Validation(t *testing.T) {
	s := Secrets{Store: backend.NewMemory()}
	cases := []Target{{Service: "", User: "u"}, {Service: "s", User: ""}}
	for _, target := range cases {
		xe := s.Set(target, "x")
		require.NotNil(t, xe)
		assert.Equal(t, errors.CodeCfgInvalid, xe.Code)

		_, xe = s.Get(target)
		require.NotNil(t, xe)
		_, xe = s.Exists(target)
		require.NotNil(t, xe)
		require.NotNil(t, s.Delete(target))
	}
}

func TestSecrets_InvalidEncoding(t *testing.T) {
	store := backend.NewMemory()
	require.NoError(t, store.Set("app", "bin", []byte{0xFF, 0xFE}))
	s := Secrets{Store: store}

	_, xe := s.Get(Target{Service: "app", User: "bin"})
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeInvalidEncoding, xe.Code)
	assert.Equal(t, errors.ExitEncoding, errors.ExitCodeFor(xe.Code))

	ok, xe := s.Exists(Target{Service: "app", User: "bin"})
	require.Nil(t, xe)
	assert.True(t, ok, "raw bytes exist even when they are not text")
}

func TestSecrets_BackendUnavailable(t *testing.T) {
	s := Secrets{Store: backend.NewFailingMemory(backend.ErrUnavailable)}
	_, xe := s.Exists(Target{Service: "app", User: "u"})
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeBackendUnavailable, xe.Code)
	assert.Equal(t, "Keyring error: No Backend Found", xe.Message)
}
