//go:build darwin && cgo

package keyring

import (
	"errors"
	"testing"

	gokeychain "github.com/keybase/go-keychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xkeyring/internal/backend/keychain"
)

func TestFromBackendKeychain(t *testing.T) {
	native := &keychain.Error{Op: "set", Err: gokeychain.ErrorAuthFailed}
	err := FromBackend(native)

	assert.Equal(t, KindBackend, err.Kind())
	assert.Same(t, native, err.Cause())
	assert.Equal(t, "Mac Os Keychain Error: "+native.Error(), err.Error())

	var status gokeychain.Error
	require.True(t, errors.As(err, &status))
	assert.Equal(t, gokeychain.ErrorAuthFailed, status)
}

func TestStoreFailureWrapsKeychainError(t *testing.T) {
	MockInitWithError(errors.New("interaction not allowed"))
	defer MockInit()

	err := NewEntry("svc", "u").DeletePassword()
	require.NotNil(t, err)
	assert.Equal(t, KindBackend, err.Kind())
	assert.Equal(t, "Mac Os Keychain Error: custom store delete: interaction not allowed", err.Error())
}

func TestFromBackendNil(t *testing.T) {
	assert.Nil(t, FromBackend(nil))
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "keychain", BackendName)
}
