package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/app"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code.
// Every failure leaves as one error envelope on stdout.
func run() int {
	a := app.New(version, commit, date)
	w := output.New(os.Stdout, os.Stderr)

	root := NewRootCommand()
	for _, cmd := range []*cobra.Command{
		NewSpecCommand(&a, &w),
		NewVersionCommand(&a, &w),
		NewSetCommand(&w),
		NewGetCommand(&w),
		NewDeleteCommand(&w),
		NewResolveCommand(&w),
		NewProfileCommand(&w),
		NewMCPCommand(),
	} {
		root.AddCommand(cmd)
	}

	err := root.Execute()
	if err == nil {
		return int(errors.ExitOK)
	}
	xe := normalizeErr(err)
	logger.Debug("command failed", "code", xe.Code, "details", xe.Details)
	_ = w.WriteError(errorFormat(GlobalConfig.FormatStr), xe)
	return int(errors.ExitCodeFor(xe.Code))
}
