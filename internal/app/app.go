package app

import (
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/internal/spec"
	"github.com/zx06/xkeyring/pkg/keyring"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

func (a App) BuildSpec() spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./xkeyring.yaml or $HOME/.config/xkeyring/xkeyring.yaml"},
		{Name: "profile", Shorthand: "p", Env: "XKEYRING_PROFILE", Default: "", Description: "Profile name (config: profiles.<name>)"},
		{Name: "format", Shorthand: "f", Env: "XKEYRING_FORMAT", Default: "auto", Description: "Output format: " + output.FormatList()},
		{Name: "verbose", Shorthand: "v", Default: "false", Description: "Debug logging to stderr"},
	}
	serviceFlag := spec.FlagSpec{Name: "service", Shorthand: "s", Env: "XKEYRING_SERVICE", Default: "xkeyring", Description: "Keyring service name (config: profiles.<name>.service)"}
	withFlags := func(extra ...spec.FlagSpec) []spec.FlagSpec {
		out := make([]spec.FlagSpec, 0, len(globalFlags)+len(extra))
		out = append(out, globalFlags...)
		return append(out, extra...)
	}
	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Commands: []spec.CommandSpec{
			{
				Name:        "spec",
				Description: "Export tool spec for AI/agents",
				Flags:       globalFlags,
			},
			{
				Name:        "version",
				Description: "Print version information",
				Flags:       globalFlags,
			},
			{
				Name:        "set",
				Description: "Store a password for <user> (prompted on a TTY)",
				Flags:       withFlags(serviceFlag, spec.FlagSpec{Name: "stdin", Default: "false", Description: "Read the password from stdin"}),
			},
			{
				Name:        "get",
				Description: "Print the password stored for <user>",
				Flags:       withFlags(serviceFlag),
			},
			{
				Name:        "delete",
				Description: "Delete the password stored for <user>",
				Flags:       withFlags(serviceFlag),
			},
			{
				Name:        "resolve",
				Description: "Resolve a secret reference (keyring:[service/]user or plaintext)",
				Flags:       withFlags(serviceFlag, spec.FlagSpec{Name: "allow-plaintext", Default: "false", Description: "Allow plaintext values"}),
			},
			{
				Name:        "profile list",
				Description: "List configured profiles",
				Flags:       globalFlags,
			},
			{
				Name:        "mcp server",
				Description: "Start MCP server for AI assistant integration",
				Flags: withFlags(
					spec.FlagSpec{Name: "transport", Env: "XKEYRING_MCP_TRANSPORT", Default: "stdio", Description: "MCP transport: stdio|streamable_http"},
					spec.FlagSpec{Name: "http-addr", Env: "XKEYRING_MCP_HTTP_ADDR", Default: "127.0.0.1:8787", Description: "Streamable HTTP listen address"},
					spec.FlagSpec{Name: "http-auth-token", Env: "XKEYRING_MCP_HTTP_AUTH_TOKEN", Default: "", Description: "Streamable HTTP auth token"},
				),
			},
		},
		ErrorCodes: errors.AllCodes(),
		ErrorKinds: errorKinds(),
		Backend:    keyring.BackendName,
	}
}

var kindMessages = map[keyring.Kind]string{
	keyring.KindBackend:         "<platform> Error: <native error>",
	keyring.KindNoBackend:       keyring.ErrNoBackend.Error(),
	keyring.KindNoPassword:      keyring.ErrNoPassword.Error(),
	keyring.KindInvalidEncoding: "Keyring Parse Error: <cause> | Keyring Unicode Error: <cause>",
}

func errorKinds() []spec.ErrorKindSpec {
	kinds := keyring.Kinds()
	out := make([]spec.ErrorKindSpec, 0, len(kinds))
	for _, k := range kinds {
		code := errors.CodeForKind(k)
		out = append(out, spec.ErrorKindSpec{
			Kind:     k.String(),
			Code:     code,
			ExitCode: int(errors.ExitCodeFor(code)),
			Message:  kindMessages[k],
		})
	}
	return out
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Backend string `json:"backend" yaml:"backend"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date, Backend: keyring.BackendName}
}
