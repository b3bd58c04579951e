// Package spec 描述 `xkeyring spec` 导出的机器可读工具说明。
package spec

import "github.com/zx06/xkeyring/internal/errors"

type FlagSpec struct {
	Name        string `json:"name" yaml:"name"`
	Shorthand   string `json:"shorthand,omitempty" yaml:"shorthand,omitempty"`
	Env         string `json:"env,omitempty" yaml:"env,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type CommandSpec struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Flags       []FlagSpec `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// ErrorKindSpec 说明一种 keyring 失败类别会以哪个错误码、哪个退出码离开 CLI。
type ErrorKindSpec struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Code     errors.Code `json:"code" yaml:"code"`
	ExitCode int         `json:"exit_code" yaml:"exit_code"`
	Message  string      `json:"message" yaml:"message"`
}

type Spec struct {
	SchemaVersion int             `json:"schema_version" yaml:"schema_version"`
	Backend       string          `json:"backend" yaml:"backend"`
	Commands      []CommandSpec   `json:"commands" yaml:"commands"`
	ErrorCodes    []errors.Code   `json:"error_codes" yaml:"error_codes"`
	ErrorKinds    []ErrorKindSpec `json:"error_kinds" yaml:"error_kinds"`
}
