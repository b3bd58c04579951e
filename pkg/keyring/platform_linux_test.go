//go:build linux

package keyring

import (
	"errors"
	"strings"
	"testing"

	dbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xkeyring/internal/backend/secretservice"
)

func TestFromBackendSecretService(t *testing.T) {
	native := &secretservice.Error{Op: "get", Err: errors.New("timeout")}
	err := FromBackend(native)

	assert.Equal(t, KindBackend, err.Kind())
	assert.Same(t, native, err.Cause())
	assert.Equal(t, "Secret Service Error: get: timeout", err.Error())
}

func TestStoreFailureKeepsDBusDetail(t *testing.T) {
	dbusErr := dbus.Error{Name: "org.freedesktop.Secret.Error.IsLocked", Body: []interface{}{"collection is locked"}}
	MockInitWithError(dbusErr)
	defer MockInit()

	_, err := NewEntry("svc", "u").Password()
	require.NotNil(t, err)
	assert.Equal(t, KindBackend, err.Kind())
	assert.True(t, strings.HasPrefix(err.Error(), "Secret Service Error: custom store get: "))

	var native *secretservice.Error
	require.True(t, errors.As(err, &native))
	assert.Equal(t, "org.freedesktop.Secret.Error.IsLocked", native.Name())

	var got dbus.Error
	require.True(t, errors.As(err, &got))
	assert.Equal(t, dbusErr.Name, got.Name)
}

func TestFromBackendNil(t *testing.T) {
	assert.Nil(t, FromBackend(nil))
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "secret-service", BackendName)
}
