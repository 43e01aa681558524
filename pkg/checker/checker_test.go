package checker

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/praetorian-inc/nestcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, config Config, content string) *types.Result {
	t.Helper()
	result, err := New(config).CheckReader(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	return result
}

func TestCheckScenarios(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "balanced function",
			content: "function f() { return [1,2]; }",
			want:    "Structure seems valid",
		},
		{
			name:    "extra closing brace",
			content: "function f() { return [1,2]; }}",
			want:    "Error: Unexpected '}' at line 1, col 31",
		},
		{
			name:    "mismatched closer",
			content: "if (x) { ]",
			want:    "Error: Mismatched ']' at line 1, col 10. Expected closing for '{' from line 1",
		},
		{
			name:    "unclosed brace",
			content: "function f() {",
			want:    "Error: Unclosed '{' from line 1, col 14",
		},
		{
			name:    "brace inside string",
			content: `let s = "}"; let y = [1];`,
			want:    "Structure seems valid",
		},
		{
			name:    "escaped quote inside string",
			content: `let s = "a\"}"; foo();`,
			want:    "Structure seems valid",
		},
		{
			name:    "empty input",
			content: "",
			want:    "Structure seems valid",
		},
		{
			name:    "brackets after line comment",
			content: "f(); // ) ] }",
			want:    "Structure seems valid",
		},
		{
			name:    "unexpected closer on a later line",
			content: "a = [\n  1,\n]\n)",
			want:    "Error: Unexpected ')' at line 4, col 1",
		},
		{
			name:    "mismatched closer names the opener line",
			content: "call(\n  {\n    x: [1\n  }\n)",
			want:    "Error: Mismatched '}' at line 4, col 3. Expected closing for '[' from line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := check(t, Config{}, tt.content)
			assert.Equal(t, tt.want, result.Message())
		})
	}
}

func TestUnclosedReportsInnermost(t *testing.T) {
	result := check(t, Config{}, "{\n  [\n    (\n")

	require.NotNil(t, result.Problem)
	assert.Equal(t, types.UnclosedOpener, result.Problem.Kind)
	assert.Equal(t, types.OpenParen, result.Problem.Char)
	assert.Equal(t, types.SourcePoint{Line: 3, Column: 5}, result.Problem.Position)
}

func TestStopsAtFirstError(t *testing.T) {
	result := check(t, Config{}, "}\n]\n(")

	require.NotNil(t, result.Problem)
	assert.Equal(t, types.UnexpectedCloser, result.Problem.Kind)
	assert.Equal(t, 1, result.Problem.Position.Line)
}

func TestMismatchedCarriesOpener(t *testing.T) {
	result := check(t, Config{}, "(\n]")

	require.NotNil(t, result.Problem)
	require.NotNil(t, result.Problem.Opener)
	assert.Equal(t, types.OpenParen, result.Problem.Opener.Char)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 1}, result.Problem.Opener.Position)
}

func TestMaxDepth(t *testing.T) {
	result := check(t, Config{}, "{ [ ( ) ] }\n( )")

	assert.True(t, result.Valid())
	assert.Equal(t, 3, result.MaxDepth)
	assert.Equal(t, 2, result.Lines)
}

func TestBlockComments(t *testing.T) {
	content := "f(\n/* ) ]\n } */\n)"

	withoutBlocks := check(t, Config{}, content)
	require.NotNil(t, withoutBlocks.Problem)
	assert.Equal(t, types.UnexpectedCloser, withoutBlocks.Problem.Kind)
	assert.Equal(t, types.SourcePoint{Line: 2, Column: 6}, withoutBlocks.Problem.Position)

	withBlocks := check(t, Config{BlockComments: true}, content)
	assert.True(t, withBlocks.Valid(), withBlocks.Message())
}

func TestCRLFInput(t *testing.T) {
	result := check(t, Config{}, "if (a) {\r\n  b();\r\n}\r\n]")

	require.NotNil(t, result.Problem)
	assert.Equal(t, "Error: Unexpected ']' at line 4, col 1", result.Message())
}

func TestCheckFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "database.js")
	err := os.WriteFile(path, []byte("module.exports = {\n  pool: { max: 5 },\n};\n"), 0644)
	require.NoError(t, err)

	result, err := New(Config{}).CheckFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, path, result.Path)
	assert.Equal(t, 3, result.Lines)
}

func TestCheckFileIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.js")
	err := os.WriteFile(path, []byte("function f() {\n  return [1, 2;\n}\n"), 0644)
	require.NoError(t, err)

	c := New(Config{})
	first, err := c.CheckFile(context.Background(), path)
	require.NoError(t, err)
	second, err := c.CheckFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Error: Mismatched '}' at line 3, col 1. Expected closing for '[' from line 2", first.Message())
}

func TestCheckFileMissing(t *testing.T) {
	_, err := New(Config{}).CheckFile(context.Background(), "/nonexistent/file.js")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckFileTooLarge(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "big.js")
	err := os.WriteFile(path, []byte(strings.Repeat("()", 64)), 0644)
	require.NoError(t, err)

	_, err = New(Config{MaxFileSize: 16}).CheckFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = New(Config{MaxFileSize: 16}).CheckReader(context.Background(), strings.NewReader(strings.Repeat("()", 64)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestCheckLinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}).CheckLines(ctx, []string{"{", "}"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidUTF8(t *testing.T) {
	content := []byte("f(\xff)")

	_, err := New(Config{}).CheckReader(context.Background(), bytes.NewReader(content))
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	path := filepath.Join(t.TempDir(), "latin1.js")
	require.NoError(t, os.WriteFile(path, content, 0644))
	_, err = New(Config{}).CheckFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestMultibyteColumns(t *testing.T) {
	result := check(t, Config{}, "x = \"é\"; ü]")

	require.NotNil(t, result.Problem)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 11}, result.Problem.Position)
}

func TestUnterminatedBlockCommentIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result := check(t, Config{BlockComments: true, Logger: logger}, "f()\n/* never closed {\n")
	assert.True(t, result.Valid())
	assert.Contains(t, logs.String(), "input ends inside a block comment")
}
