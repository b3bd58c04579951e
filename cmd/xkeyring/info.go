package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/output"
)

// newInfoCommand builds a read-only command that prints one value in the envelope.
func newInfoCommand(use, short string, w *output.Writer, data func() any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := currentFormat()
			if err != nil {
				return err
			}
			return w.WriteOK(format, data())
		},
	}
}

// NewSpecCommand exports the machine-readable tool spec (commands, codes, keyring kinds).
func NewSpecCommand(a *app.App, w *output.Writer) *cobra.Command {
	return newInfoCommand("spec", "Export tool spec for AI/agents", w, func() any { return a.BuildSpec() })
}

// NewVersionCommand reports build info and the compiled-in keyring backend.
func NewVersionCommand(a *app.App, w *output.Writer) *cobra.Command {
	return newInfoCommand("version", "Print version and keyring backend", w, func() any { return a.VersionInfo() })
}
