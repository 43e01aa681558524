package main

import (
	"bytes"
	"testing"

	"github.com/praetorian-inc/nestcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, colorEnabled("always", &buf))
	assert.False(t, colorEnabled("never", &buf))
	assert.False(t, colorEnabled("auto", &buf), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled("auto", &buf))
}

func TestOutputHumanColors(t *testing.T) {
	result := &types.Result{Problem: &types.Problem{
		Kind:     types.UnclosedOpener,
		Char:     types.OpenBrace,
		Position: types.SourcePoint{Line: 1, Column: 14},
	}}

	var plain bytes.Buffer
	require.NoError(t, outputHuman(&plain, newStyles(false), result))
	assert.Equal(t, "Error: Unclosed '{' from line 1, col 14\n", plain.String())

	var colored bytes.Buffer
	require.NoError(t, outputHuman(&colored, newStyles(true), result))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "Error: Unclosed '{' from line 1, col 14")
}

func TestOutputHumanValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputHuman(&buf, newStyles(false), &types.Result{Lines: 2}))
	assert.Equal(t, "Structure seems valid\n", buf.String())
}
