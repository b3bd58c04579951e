package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
	"github.com/zx06/xkeyring/internal/output"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr  string
	ConfigStr  string
	ProfileStr string
	ServiceStr string
	Verbose    bool
	Resolved   config.Resolved
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// logger writes diagnostics to stderr; replaced once flags are parsed
var logger = log.New(os.Stderr)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "xkeyring",
		Short:         "Store and resolve secrets in the OS keyring",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if GlobalConfig.Verbose {
				level = slog.LevelDebug
			}
			logger = log.NewLevel(os.Stderr, level)

			// CLI > ENV > Config
			formatSet := cmd.Flags().Changed("format")
			profileSet := cmd.Flags().Changed("profile")
			serviceSet := cmd.Flags().Changed("service")
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:    GlobalConfig.ConfigStr,
				CLIProfile:    GlobalConfig.ProfileStr,
				CLIProfileSet: profileSet,
				CLIFormat:     GlobalConfig.FormatStr,
				CLIFormatSet:  formatSet,
				CLIService:    GlobalConfig.ServiceStr,
				CLIServiceSet: serviceSet,
				EnvProfile:    os.Getenv("XKEYRING_PROFILE"),
				EnvFormat:     os.Getenv("XKEYRING_FORMAT"),
				EnvService:    os.Getenv("XKEYRING_SERVICE"),
			})
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.ProfileStr = r.ProfileName
			logger.Debug("config resolved", "config_path", r.ConfigPath, "profile", r.ProfileName, "service", r.Service)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./xkeyring.yaml or $HOME/.config/xkeyring/xkeyring.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.ProfileStr, "profile", "p", "", "Profile name (config: profiles.<name>)")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: "+output.FormatList())
	root.PersistentFlags().StringVarP(&GlobalConfig.ServiceStr, "service", "s", "", "Keyring service name (default: xkeyring)")
	root.PersistentFlags().BoolVarP(&GlobalConfig.Verbose, "verbose", "v", false, "Debug logging to stderr")

	return root
}
