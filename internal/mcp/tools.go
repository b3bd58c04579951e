package mcp

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/internal/secret"
)

// SecretInput locates a credential. Empty fields fall back to the profile.
type SecretInput struct {
	Profile string `json:"profile,omitempty" jsonschema:"Profile name to take service/user defaults from"`
	Service string `json:"service,omitempty" jsonschema:"Keyring service name"`
	User    string `json:"user,omitempty" jsonschema:"Account name within the service"`
}

// SecretSetInput is the input for the secret_set tool
type SecretSetInput struct {
	SecretInput
	Password string `json:"password" jsonschema:"Password to store"`
}

// ToolHandler manages MCP tools
type ToolHandler struct {
	config      *config.File
	secrets     app.Secrets
	allowReveal bool
}

// NewToolHandler creates a new tool handler
func NewToolHandler(cfg *config.File, secrets app.Secrets) *ToolHandler {
	if cfg == nil {
		cfg = &config.File{}
	}
	return &ToolHandler{
		config:      cfg,
		secrets:     secrets,
		allowReveal: cfg.MCP.AllowReveal,
	}
}

// getProfileNames returns a sorted list of available profile names
func (h *ToolHandler) getProfileNames() []string {
	names := make([]string, 0, len(h.config.Profiles))
	for name := range h.config.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (h *ToolHandler) secretSchema(withPassword bool) *jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		"service": {Type: "string", Description: "Keyring service name"},
		"user":    {Type: "string", Description: "Account name within the service"},
	}
	if names := h.getProfileNames(); len(names) > 0 {
		enums := make([]any, len(names))
		for i, name := range names {
			enums[i] = name
		}
		props["profile"] = &jsonschema.Schema{Type: "string", Description: "Profile name", Enum: enums}
	}
	s := &jsonschema.Schema{Type: "object", Properties: props}
	if withPassword {
		props["password"] = &jsonschema.Schema{Type: "string", Description: "Password to store"}
		s.Required = []string{"password"}
	}
	return s
}

// RegisterTools registers all tools with the MCP server
func (h *ToolHandler) RegisterTools(server *mcp.Server) {
	getDesc := "Check whether a password is stored (the value is not returned)"
	if h.allowReveal {
		getDesc = "Read a stored password"
	}
	server.AddTool(&mcp.Tool{
		Name:        "secret_get",
		Description: getDesc,
		InputSchema: h.secretSchema(false),
	}, rawHandler(h, h.SecretGet))

	server.AddTool(&mcp.Tool{
		Name:        "secret_set",
		Description: "Store a password in the OS keyring",
		InputSchema: h.secretSchema(true),
	}, rawHandler(h, h.SecretSet))

	server.AddTool(&mcp.Tool{
		Name:        "secret_delete",
		Description: "Delete a stored password",
		InputSchema: h.secretSchema(false),
	}, rawHandler(h, h.SecretDelete))

	mcp.AddTool[struct{}, any](server, &mcp.Tool{
		Name:        "profile_list",
		Description: "List all configured profiles",
	}, h.ProfileList)
}

// rawHandler decodes arguments and forwards to a typed handler
func rawHandler[In any](h *ToolHandler, fn func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error)) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input In
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &input); err != nil {
				return h.errorResult(errors.Wrap(errors.CodeCfgInvalid, "invalid input", nil, err)), nil
			}
		}
		result, _, err := fn(ctx, req, input)
		return result, err
	}
}

// target resolves service/user from the input and the referenced profile
func (h *ToolHandler) target(input SecretInput) (app.Target, *errors.XError) {
	var profile config.Profile
	if input.Profile != "" {
		p, ok := h.config.Profiles[input.Profile]
		if !ok {
			return app.Target{}, errors.New(errors.CodeCfgInvalid, "profile does not exist", map[string]any{"name": input.Profile, "reason": "profile_not_found"})
		}
		profile = p
	}
	t := app.Target{
		Service: firstNonEmpty(input.Service, profile.Service, secret.DefaultService),
		User:    firstNonEmpty(input.User, profile.User),
	}
	return t, nil
}

// SecretGet reports whether a password exists, and returns it when reveal is allowed
func (h *ToolHandler) SecretGet(ctx context.Context, req *mcp.CallToolRequest, input SecretInput) (*mcp.CallToolResult, any, error) {
	t, xe := h.target(input)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	data := map[string]any{"service": t.Service, "user": t.User}
	if h.allowReveal {
		pw, xe := h.secrets.Get(t)
		if xe != nil {
			return h.errorResult(xe), nil, nil
		}
		data["exists"] = true
		data["password"] = pw
		return h.okResult(data), nil, nil
	}
	exists, xe := h.secrets.Exists(t)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	data["exists"] = exists
	return h.okResult(data), nil, nil
}

// SecretSet stores a password
func (h *ToolHandler) SecretSet(ctx context.Context, req *mcp.CallToolRequest, input SecretSetInput) (*mcp.CallToolResult, any, error) {
	t, xe := h.target(input.SecretInput)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	if xe := h.secrets.Set(t, input.Password); xe != nil {
		return h.errorResult(xe), nil, nil
	}
	return h.okResult(map[string]any{"service": t.Service, "user": t.User, "stored": true}), nil, nil
}

// SecretDelete deletes a password
func (h *ToolHandler) SecretDelete(ctx context.Context, req *mcp.CallToolRequest, input SecretInput) (*mcp.CallToolResult, any, error) {
	t, xe := h.target(input)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	if xe := h.secrets.Delete(t); xe != nil {
		return h.errorResult(xe), nil, nil
	}
	return h.okResult(map[string]any{"service": t.Service, "user": t.User, "deleted": true}), nil, nil
}

// ProfileList lists all profiles
func (h *ToolHandler) ProfileList(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	type profileInfo struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Service     string `json:"service,omitempty"`
		User        string `json:"user,omitempty"`
	}

	profiles := make([]profileInfo, 0, len(h.config.Profiles))
	for _, name := range h.getProfileNames() {
		p := h.config.Profiles[name]
		profiles = append(profiles, profileInfo{
			Name:        name,
			Description: p.Description,
			Service:     p.Service,
			User:        p.User,
		})
	}
	return h.okResult(map[string]any{"profiles": profiles}), nil, nil
}

func (h *ToolHandler) okResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(output.OKEnvelope(data), "", "  ")
	if err != nil {
		return h.errorResult(errors.Wrap(errors.CodeInternal, "failed to marshal result", nil, err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonData)},
		},
	}
}

func (h *ToolHandler) errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: h.formatError(err)},
		},
	}
}

// formatError formats an error as JSON
func (h *ToolHandler) formatError(err error) string {
	var xe *errors.XError
	if err != nil {
		xe = errors.AsOrWrap(err)
	}
	jsonData, _ := json.MarshalIndent(output.ErrorEnvelope(xe), "", "  ")
	return string(jsonData)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CreateServer creates a new MCP server
func CreateServer(version string, cfg *config.File, secrets app.Secrets) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "xkeyring",
		Version: version,
	}, nil)

	handler := NewToolHandler(cfg, secrets)
	handler.RegisterTools(server)

	return server, nil
}
