package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["check"])
	assert.True(t, names["rules"])
	assert.True(t, names["version"])
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "verbose", "quiet"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestFlagKeysMatchCheckFlags(t *testing.T) {
	for key, name := range flagKeys {
		flag := checkCmd.Flags().Lookup(name)
		if flag == nil {
			flag = rootCmd.PersistentFlags().Lookup(name)
		}
		assert.NotNil(t, flag, "config key %s is bound to unknown flag %s", key, name)
	}
}
