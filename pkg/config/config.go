// Package config loads nestcheck settings from defaults, an optional YAML
// file, NESTCHECK_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. NESTCHECK_CHECK_FORMAT.
const EnvPrefix = "NESTCHECK"

// Config holds the complete application configuration.
type Config struct {
	Check CheckConfig `mapstructure:"check"`
	Log   LogConfig   `mapstructure:"log"`
}

// CheckConfig holds settings for the check command.
type CheckConfig struct {
	Format        string `mapstructure:"format"`
	Color         string `mapstructure:"color"`
	BlockComments bool   `mapstructure:"block_comments"`
	MaxFileSize   int64  `mapstructure:"max_file_size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	formats    = []string{"human", "json", "yaml", "sarif"}
	colorModes = []string{"auto", "always", "never"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("check.format", "human")
	v.SetDefault("check.color", "auto")
	v.SetDefault("check.block_comments", false)
	v.SetDefault("check.max_file_size", 10*1024*1024)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// NewViper creates a viper instance with defaults and environment binding.
// If cfgFile is empty, .nestcheck.yaml is searched for in the working
// directory and then in $HOME. A missing config file is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".nestcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return v, nil
}

// New decodes and validates the configuration held by v.
func New(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate checks enumerated values and numeric ranges.
func (c *Config) Validate() error {
	if !oneOf(c.Check.Format, formats) {
		return fmt.Errorf("check.format must be one of %s, got %q", strings.Join(formats, ", "), c.Check.Format)
	}
	if !oneOf(c.Check.Color, colorModes) {
		return fmt.Errorf("check.color must be one of %s, got %q", strings.Join(colorModes, ", "), c.Check.Color)
	}
	if c.Check.MaxFileSize < 0 {
		return errors.New("check.max_file_size must not be negative")
	}
	if !oneOf(strings.ToLower(c.Log.Level), logLevels) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !oneOf(strings.ToLower(c.Log.Format), logFormats) {
		return fmt.Errorf("log.format must be one of %s, got %q", strings.Join(logFormats, ", "), c.Log.Format)
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
