package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := New(v)
	require.NoError(t, err)

	assert.Equal(t, "human", cfg.Check.Format)
	assert.Equal(t, "auto", cfg.Check.Color)
	assert.False(t, cfg.Check.BlockComments)
	assert.Equal(t, int64(10*1024*1024), cfg.Check.MaxFileSize)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestNewViperReadsConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "nestcheck.yaml")
	content := `check:
  format: json
  block_comments: true
  max_file_size: 2048
log:
  level: debug
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))

	v, err := NewViper(cfgFile)
	require.NoError(t, err)
	cfg, err := New(v)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Check.Format)
	assert.True(t, cfg.Check.BlockComments)
	assert.Equal(t, int64(2048), cfg.Check.MaxFileSize)
	assert.Equal(t, "auto", cfg.Check.Color, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNewViperEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NESTCHECK_CHECK_FORMAT", "sarif")
	t.Setenv("NESTCHECK_CHECK_BLOCK_COMMENTS", "true")

	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, "sarif", cfg.Check.Format)
	assert.True(t, cfg.Check.BlockComments)
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewViperInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "broken.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("check: [unclosed\n"), 0644))

	_, err := NewViper(cfgFile)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Check: CheckConfig{Format: "human", Color: "auto"},
			Log:   LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "uppercase log level", mutate: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "bad format", mutate: func(c *Config) { c.Check.Format = "xml" }, wantErr: "check.format"},
		{name: "bad color", mutate: func(c *Config) { c.Check.Color = "sometimes" }, wantErr: "check.color"},
		{name: "negative size", mutate: func(c *Config) { c.Check.MaxFileSize = -1 }, wantErr: "check.max_file_size"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := LogConfig{Level: "info", Format: "json"}.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)

	buf.Reset()
	logger = LogConfig{Level: "warn", Format: "text"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
