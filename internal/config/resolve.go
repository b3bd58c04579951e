package config

import (
	"github.com/zx06/xkeyring/internal/errors"
)

// Resolve 合并 config/profile/format/service：CLI > ENV > Config。
func Resolve(opts Options) (Resolved, *errors.XError) {
	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	// 选择 profile：--profile > XKEYRING_PROFILE > profiles.default > 空
	profile := ""
	if opts.CLIProfileSet {
		profile = opts.CLIProfile
	} else if opts.EnvProfile != "" {
		profile = opts.EnvProfile
	} else if _, ok := cfg.Profiles["default"]; ok {
		profile = "default"
	}

	var selected Profile
	if profile != "" {
		p, ok := cfg.Profiles[profile]
		if !ok && (opts.CLIProfileSet || opts.EnvProfile != "") {
			return Resolved{}, errors.New(errors.CodeCfgInvalid, "profile does not exist", map[string]any{"name": profile, "reason": "profile_not_found"})
		}
		selected = p
	}

	// format：--format > XKEYRING_FORMAT > profile.format > auto
	format := "auto"
	if selected.Format != "" {
		format = selected.Format
	}
	if opts.EnvFormat != "" {
		format = opts.EnvFormat
	}
	if opts.CLIFormatSet {
		format = opts.CLIFormat
	}

	// service：--service > XKEYRING_SERVICE > profile.service
	service := selected.Service
	if opts.EnvService != "" {
		service = opts.EnvService
	}
	if opts.CLIServiceSet {
		service = opts.CLIService
	}

	return Resolved{
		ConfigPath:  cfgPath,
		ProfileName: profile,
		Format:      format,
		Service:     service,
		Profile:     selected,
	}, nil
}
