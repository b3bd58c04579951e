package main

import (
	"os"

	"golang.org/x/term"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/pkg/keyring"
)

// stdoutIsTTY decides what "auto" resolves to; tests replace it.
var stdoutIsTTY = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// currentFormat returns the concrete output format for this invocation.
func currentFormat() (output.Format, error) {
	return parseOutputFormat(GlobalConfig.FormatStr)
}

func parseOutputFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{
			"format":  s,
			"allowed": output.FormatList(),
		})
	}
	return concreteFormat(f), nil
}

// errorFormat never fails: a bad --format must still produce an error envelope.
func errorFormat(s string) output.Format {
	if f, err := parseOutputFormat(s); err == nil {
		return f
	}
	return concreteFormat(output.FormatAuto)
}

// concreteFormat maps "auto" to table on a terminal and json otherwise.
func concreteFormat(f output.Format) output.Format {
	switch {
	case f != output.FormatAuto:
		return f
	case stdoutIsTTY():
		return output.FormatTable
	default:
		return output.FormatJSON
	}
}

// normalizeErr turns whatever a command returned into an XError with a stable code.
// A bare *keyring.Error keeps its kind mapping instead of becoming XKR_INTERNAL.
func normalizeErr(err error) *errors.XError {
	if xe, ok := errors.As(err); ok {
		return xe
	}
	if ke, ok := keyring.As(err); ok {
		return errors.FromKeyring(ke, nil)
	}
	return errors.Wrap(errors.CodeInternal, err.Error(), nil, err)
}
