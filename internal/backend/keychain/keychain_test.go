//go:build darwin && cgo

package keychain

import (
	"errors"
	"testing"

	gokeychain "github.com/keybase/go-keychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xkeyring/internal/backend"
)

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify("get", gokeychain.ErrorItemNotFound), backend.ErrNotFound)
	assert.ErrorIs(t, classify("get", gokeychain.ErrorNotAvailable), backend.ErrUnavailable)
	assert.ErrorIs(t, classify("get", gokeychain.ErrorNoSuchKeychain), backend.ErrUnavailable)

	err := classify("set", gokeychain.ErrorAuthFailed)
	var kcErr *Error
	require.ErrorAs(t, err, &kcErr)
	assert.Equal(t, "set", kcErr.Op)
	status, ok := kcErr.Status()
	require.True(t, ok)
	assert.Equal(t, gokeychain.ErrorAuthFailed, status)
	assert.Equal(t, "set: "+gokeychain.ErrorAuthFailed.Error(), kcErr.Error())
}

func TestError_StatusForPlainError(t *testing.T) {
	e := &Error{Op: "get", Err: errors.New("Too many results")}
	_, ok := e.Status()
	assert.False(t, ok)
}
