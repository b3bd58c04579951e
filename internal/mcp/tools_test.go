package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/backend"
	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/secret"
)

type envelope struct {
	OK    bool           `json:"ok"`
	Data  map[string]any `json:"data"`
	Error struct {
		Code    errors.Code    `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, result *mcp.CallToolResult) envelope {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(text.Text), &env))
	return env
}

func testConfig(allowReveal bool) *config.File {
	return &config.File{
		Profiles: map[string]config.Profile{
			"dev":  {Description: "Dev app", Service: "app-dev", User: "alice"},
			"prod": {Service: "app"},
		},
		MCP: config.MCPConfig{AllowReveal: allowReveal},
	}
}

func TestCreateServer(t *testing.T) {
	server, err := CreateServer("test", testConfig(false), app.Secrets{Store: backend.NewMemory()})
	require.NoError(t, err)
	require.NotNil(t, server)
}

func TestNewToolHandler_NilConfig(t *testing.T) {
	h := NewToolHandler(nil, app.Secrets{})
	require.NotNil(t, h.config)
	assert.Empty(t, h.getProfileNames())
}

func TestTarget(t *testing.T) {
	h := NewToolHandler(testConfig(false), app.Secrets{})

	cases := []struct {
		name  string
		input SecretInput
		want  app.Target
	}{
		{"profile defaults", SecretInput{Profile: "dev"}, app.Target{Service: "app-dev", User: "alice"}},
		{"explicit overrides profile", SecretInput{Profile: "dev", User: "bob"}, app.Target{Service: "app-dev", User: "bob"}},
		{"default service", SecretInput{User: "carol"}, app.Target{Service: secret.DefaultService, User: "carol"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, xe := h.target(tc.input)
			require.Nil(t, xe)
			assert.Equal(t, tc.want, got)
		})
	}

	_, xe := h.target(SecretInput{Profile: "missing"})
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeCfgInvalid, xe.Code)
}

func TestSecretLifecycle_NoReveal(t *testing.T) {
	ctx := context.Background()
	h := NewToolHandler(testConfig(false), app.Secrets{Store: backend.NewMemory()})

	res, _, err := h.SecretSet(ctx, nil, SecretSetInput{SecretInput: SecretInput{Profile: "dev"}, Password: "pw"})
	require.NoError(t, err)
	env := decode(t, res)
	assert.True(t, env.OK)
	assert.Equal(t, true, env.Data["stored"])

	res, _, err = h.SecretGet(ctx, nil, SecretInput{Profile: "dev"})
	require.NoError(t, err)
	env = decode(t, res)
	assert.True(t, env.OK)
	assert.Equal(t, true, env.Data["exists"])
	_, revealed := env.Data["password"]
	assert.False(t, revealed, "password must not be returned without allow_reveal")

	res, _, err = h.SecretDelete(ctx, nil, SecretInput{Profile: "dev"})
	require.NoError(t, err)
	assert.True(t, decode(t, res).OK)

	res, _, err = h.SecretGet(ctx, nil, SecretInput{Profile: "dev"})
	require.NoError(t, err)
	env = decode(t, res)
	assert.True(t, env.OK)
	assert.Equal(t, false, env.Data["exists"])
}

func TestSecretGet_Reveal(t *testing.T) {
	ctx := context.Background()
	store := backend.NewMemory()
	require.NoError(t, store.Set("app", "root", []byte("s3cret")))
	h := NewToolHandler(testConfig(true), app.Secrets{Store: store})

	res, _, err := h.SecretGet(ctx, nil, SecretInput{Profile: "prod", User: "root"})
	require.NoError(t, err)
	env := decode(t, res)
	assert.True(t, env.OK)
	assert.Equal(t, "s3cret", env.Data["password"])

	res, _, err = h.SecretGet(ctx, nil, SecretInput{Profile: "prod", User: "nobody"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	env = decode(t, res)
	assert.Equal(t, errors.CodeSecretNotFound, env.Error.Code)
	assert.Equal(t, "Keyring Error: No Password Found", env.Error.Message)
}

func TestSecretGet_BackendUnavailable(t *testing.T) {
	h := NewToolHandler(testConfig(false), app.Secrets{Store: backend.NewFailingMemory(backend.ErrUnavailable)})
	res, _, err := h.SecretGet(context.Background(), nil, SecretInput{User: "u"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	env := decode(t, res)
	assert.Equal(t, errors.CodeBackendUnavailable, env.Error.Code)
	assert.Equal(t, "no_backend", env.Error.Details["kind"])
}

func TestSecretSet_MissingUser(t *testing.T) {
	h := NewToolHandler(testConfig(false), app.Secrets{Store: backend.NewMemory()})
	res, _, err := h.SecretSet(context.Background(), nil, SecretSetInput{Password: "x"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Equal(t, errors.CodeCfgInvalid, decode(t, res).Error.Code)
}

func TestProfileList(t *testing.T) {
	h := NewToolHandler(testConfig(false), app.Secrets{})
	res, _, err := h.ProfileList(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	env := decode(t, res)
	profiles, ok := env.Data["profiles"].([]any)
	require.True(t, ok)
	require.Len(t, profiles, 2)
	first := profiles[0].(map[string]any)
	assert.Equal(t, "dev", first["name"])
	assert.Equal(t, "app-dev", first["service"])
}

func TestFormatError(t *testing.T) {
	h := NewToolHandler(nil, app.Secrets{})
	out := h.formatError(errors.New(errors.CodeCfgInvalid, "bad", nil))
	assert.True(t, strings.Contains(out, `"XKR_CFG_INVALID"`))

	out = h.formatError(assert.AnError)
	assert.True(t, strings.Contains(out, `"XKR_INTERNAL"`))

	out = h.formatError(nil)
	assert.True(t, strings.Contains(out, "unknown error"))
}

func TestServerOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	server, err := CreateServer("test", testConfig(true), app.Secrets{Store: backend.NewMemory()})
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "secret_set",
		Arguments: map[string]any{"profile": "dev", "password": "over-the-wire"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "secret_get",
		Arguments: map[string]any{"profile": "dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, "over-the-wire", decode(t, res).Data["password"])
}
