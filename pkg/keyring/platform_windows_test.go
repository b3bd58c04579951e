//go:build windows

package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	"github.com/zx06/xkeyring/internal/backend/wincred"
)

func TestFromBackendWincred(t *testing.T) {
	native := &wincred.Error{Op: "set", Err: windows.ERROR_ACCESS_DENIED}
	err := FromBackend(native)

	assert.Equal(t, KindBackend, err.Kind())
	assert.Same(t, native, err.Cause())
	assert.Equal(t, "Windows Vault Error: "+native.Error(), err.Error())

	var errno windows.Errno
	require.True(t, errors.As(err, &errno))
	assert.Equal(t, windows.ERROR_ACCESS_DENIED, errno)
}

func TestStoreFailureWrapsVaultError(t *testing.T) {
	MockInitWithError(windows.ERROR_ACCESS_DENIED)
	defer MockInit()

	err := NewEntry("svc", "u").SetPassword("x")
	require.NotNil(t, err)
	assert.Equal(t, KindBackend, err.Kind())

	var native *wincred.Error
	require.True(t, errors.As(err, &native))
	assert.Equal(t, "custom store set", native.Op)
}

func TestFromBackendNil(t *testing.T) {
	assert.Nil(t, FromBackend(nil))
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "wincred", BackendName)
}
