package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	mcp_pkg "github.com/zx06/xkeyring/internal/mcp"
	"github.com/zx06/xkeyring/internal/secret"
)

const defaultMCPHTTPAddr = "127.0.0.1:8787"

// Environment variables read by `mcp server`.
const (
	envMCPTransport = "XKEYRING_MCP_TRANSPORT"
	envMCPHTTPAddr  = "XKEYRING_MCP_HTTP_ADDR"
	envMCPHTTPToken = "XKEYRING_MCP_HTTP_AUTH_TOKEN"
)

// NewMCPCommand creates the MCP command group
func NewMCPCommand() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP (Model Context Protocol) server commands",
	}
	mcpCmd.AddCommand(newMCPServerCommand())
	return mcpCmd
}

// mcpFlag is one `mcp server` flag value plus whether the user set it.
type mcpFlag struct {
	value string
	set   bool
}

type mcpServerOptions struct {
	transport mcpFlag
	httpAddr  mcpFlag
	authToken mcpFlag
}

type mcpServerResolved struct {
	transport     string
	httpAddr      string
	httpAuthToken string
}

func newMCPServerCommand() *cobra.Command {
	opts := &mcpServerOptions{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start MCP server for AI assistant integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.transport.set = cmd.Flags().Changed("transport")
			opts.httpAddr.set = cmd.Flags().Changed("http-addr")
			opts.authToken.set = cmd.Flags().Changed("http-auth-token")
			return runMCPServer(opts)
		},
	}
	cmd.Flags().StringVar(&opts.transport.value, "transport", mcp_pkg.TransportStdio, "MCP transport: stdio|streamable_http")
	cmd.Flags().StringVar(&opts.httpAddr.value, "http-addr", defaultMCPHTTPAddr, "Streamable HTTP listen address")
	cmd.Flags().StringVar(&opts.authToken.value, "http-auth-token", "", "Streamable HTTP bearer token (required for streamable_http)")
	return cmd
}

func runMCPServer(opts *mcpServerOptions) error {
	cfg, _, xe := config.LoadConfig(config.Options{ConfigPath: GlobalConfig.ConfigStr})
	if xe != nil {
		return xe
	}
	resolved, xe := resolveMCPServerOptions(opts, cfg)
	if xe != nil {
		return xe
	}

	server, err := mcp_pkg.CreateServer(version, &cfg, app.Secrets{Logger: logger})
	if err != nil {
		return errors.AsOrWrap(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("mcp server starting", "transport", resolved.transport, "allow_reveal", cfg.MCP.AllowReveal)
	if resolved.transport == mcp_pkg.TransportStdio {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	handler, err := mcp_pkg.NewStreamableHTTPHandler(server, resolved.httpAuthToken)
	if err != nil {
		return errors.AsOrWrap(err)
	}
	logger.Info("mcp server listening", "addr", resolved.httpAddr)
	return mcp_pkg.ServeHTTP(ctx, resolved.httpAddr, handler)
}

// layered returns the first non-empty of: the flag if set, the env var, the config value.
func layered(flag mcpFlag, env, fromConfig string) string {
	if flag.set && flag.value != "" {
		return flag.value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fromConfig
}

func resolveMCPServerOptions(opts *mcpServerOptions, cfg config.File) (mcpServerResolved, *errors.XError) {
	if opts == nil {
		opts = &mcpServerOptions{}
	}
	r := mcpServerResolved{
		transport:     layered(opts.transport, envMCPTransport, cfg.MCP.Transport),
		httpAddr:      layered(opts.httpAddr, envMCPHTTPAddr, cfg.MCP.HTTP.Addr),
		httpAuthToken: layered(opts.authToken, envMCPHTTPToken, ""),
	}
	if r.transport == "" {
		r.transport = mcp_pkg.TransportStdio
	}
	if r.httpAddr == "" {
		r.httpAddr = defaultMCPHTTPAddr
	}

	switch r.transport {
	case mcp_pkg.TransportStdio:
		return r, nil
	case mcp_pkg.TransportStreamableHTTP:
	default:
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "invalid mcp transport", map[string]any{"transport": r.transport})
	}

	// The config token may be a keyring reference; it is only resolved when HTTP needs it.
	if r.httpAuthToken == "" && cfg.MCP.HTTP.AuthToken != "" {
		token, xe := secret.Resolve(cfg.MCP.HTTP.AuthToken, secret.Options{
			AllowPlaintext: cfg.MCP.HTTP.AllowPlaintextToken,
		})
		if xe != nil {
			return mcpServerResolved{}, xe
		}
		r.httpAuthToken = token
	}
	if r.httpAuthToken == "" {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "streamable http transport requires auth token", nil)
	}
	return r, nil
}
