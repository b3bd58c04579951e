package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/internal/secret"
)

// Input sources for `set`; tests replace them.
var (
	stdin        io.Reader = os.Stdin
	stdinIsTTY             = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword           = func() ([]byte, error) {
		_, _ = fmt.Fprint(os.Stderr, "Password: ")
		defer fmt.Fprintln(os.Stderr)
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

// currentTarget picks service/user: args > --service/ENV/profile > defaults
func currentTarget(args []string) app.Target {
	service := GlobalConfig.Resolved.Service
	if service == "" {
		service = secret.DefaultService
	}
	user := GlobalConfig.Resolved.Profile.User
	if len(args) > 0 {
		user = args[0]
	}
	return app.Target{Service: service, User: user}
}

func newSecrets() app.Secrets {
	return app.Secrets{Logger: logger}
}

// SetFlags holds flags for the set command
type SetFlags struct {
	Stdin bool
}

// NewSetCommand creates the set command
func NewSetCommand(w *output.Writer) *cobra.Command {
	flags := &SetFlags{}
	cmd := &cobra.Command{
		Use:   "set [user]",
		Short: "Store a password in the OS keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args, flags, w)
		},
	}
	cmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "Read the password from stdin instead of prompting")
	return cmd
}

func runSet(args []string, flags *SetFlags, w *output.Writer) error {
	format, err := currentFormat()
	if err != nil {
		return err
	}
	password, xe := readSecretInput(flags.Stdin)
	if xe != nil {
		return xe
	}
	t := currentTarget(args)
	if xe := newSecrets().Set(t, password); xe != nil {
		return xe
	}
	return w.WriteOK(format, map[string]any{"service": t.Service, "user": t.User, "stored": true})
}

func readSecretInput(fromStdin bool) (string, *errors.XError) {
	if fromStdin {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(errors.CodeInternal, "failed to read stdin", nil, err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
	if !stdinIsTTY() {
		return "", errors.New(errors.CodeCfgInvalid, "stdin is not a terminal; use --stdin to pipe the password", nil)
	}
	b, err := readPassword()
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "failed to read password", nil, err)
	}
	return string(b), nil
}

// NewGetCommand creates the get command
func NewGetCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get [user]",
		Short: "Print a stored password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := currentFormat()
			if err != nil {
				return err
			}
			t := currentTarget(args)
			password, xe := newSecrets().Get(t)
			if xe != nil {
				return xe
			}
			return w.WriteOK(format, map[string]any{"service": t.Service, "user": t.User, "password": password})
		},
	}
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [user]",
		Short: "Delete a stored password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := currentFormat()
			if err != nil {
				return err
			}
			t := currentTarget(args)
			if xe := newSecrets().Delete(t); xe != nil {
				return xe
			}
			return w.WriteOK(format, map[string]any{"service": t.Service, "user": t.User, "deleted": true})
		},
	}
}

// NewResolveCommand creates the resolve command
func NewResolveCommand(w *output.Writer) *cobra.Command {
	var allowPlaintext bool
	cmd := &cobra.Command{
		Use:   "resolve <ref>",
		Short: "Resolve a secret reference (keyring:[service/]user or plaintext)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := currentFormat()
			if err != nil {
				return err
			}
			value, xe := secret.Resolve(args[0], secret.Options{
				AllowPlaintext: allowPlaintext || GlobalConfig.Resolved.Profile.AllowPlaintext,
				Service:        GlobalConfig.Resolved.Service,
			})
			if xe != nil {
				return xe
			}
			return w.WriteOK(format, map[string]any{"ref": args[0], "value": value})
		},
	}
	cmd.Flags().BoolVar(&allowPlaintext, "allow-plaintext", false, "Allow plaintext values")
	return cmd
}
