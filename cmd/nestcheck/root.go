package main

import (
	"github.com/praetorian-inc/nestcheck/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	verbose   bool
	quiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "nestcheck",
	Short: "nestcheck - bracket nesting checker",
	Long: `nestcheck scans a source file and verifies that its brackets, braces and
parentheses are well nested. It reports the first unexpected closer, mismatched
closer or unclosed opener with its line and column.

Brackets inside string literals and after // comments are ignored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./.nestcheck.yaml or $HOME/.nestcheck.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (json, text)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"check.format":         "format",
	"check.color":          "color",
	"check.block_comments": "block-comments",
	"check.max_file_size":  "max-file-size",
	"log.level":            "log-level",
	"log.format":           "log-format",
}

// loadConfig resolves configuration for cmd. Precedence is flags set on the
// command line, then NESTCHECK_* environment variables, then the config file,
// then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := config.New(v)
	if err != nil {
		return nil, err
	}

	switch {
	case quiet:
		cfg.Log.Level = "error"
	case verbose:
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
