// Package nestcheck verifies that bracket, brace and parenthesis nesting in a
// source file is well formed.
//
// The check is line oriented. Bracket characters inside string literals
// (", ' or `) and after a // line comment are ignored. The first structural
// problem stops the check: a closer with nothing open, a closer of the wrong
// family, or, at end of file, an opener that was never closed.
//
// # Basic Usage
//
//	checker := nestcheck.New()
//
//	result, err := checker.CheckFile(ctx, "src/config/database.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Message())
//
// # Block Comments
//
// Block comments are not recognized by default. Enable them to skip brackets
// inside /* ... */:
//
//	checker := nestcheck.New(nestcheck.WithBlockComments())
package nestcheck

import (
	"context"
	"log/slog"
	"strings"

	"github.com/praetorian-inc/nestcheck/pkg/checker"
	"github.com/praetorian-inc/nestcheck/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/nestcheck" without subpackages.
type (
	// Result is the outcome of checking one input.
	Result = types.Result

	// Problem is the first structural error found.
	Problem = types.Problem

	// ProblemKind classifies a structural error.
	ProblemKind = types.ProblemKind

	// SourcePoint is a 1-based line:column position.
	SourcePoint = types.SourcePoint

	// Bracket is one of { } [ ] ( ).
	Bracket = types.Bracket
)

// Re-export problem kinds.
const (
	UnexpectedCloser = types.UnexpectedCloser
	MismatchedCloser = types.MismatchedCloser
	UnclosedOpener   = types.UnclosedOpener
)

// ErrFileTooLarge is returned when a file exceeds the configured size limit.
var ErrFileTooLarge = checker.ErrFileTooLarge

// ErrInvalidUTF8 is returned when input is not valid UTF-8 text.
var ErrInvalidUTF8 = checker.ErrInvalidUTF8

// Checker checks bracket nesting.
type Checker struct {
	checker *checker.Checker
}

// Option configures a Checker.
type Option func(*checker.Config)

// WithBlockComments skips brackets inside /* ... */ comments.
func WithBlockComments() Option {
	return func(c *checker.Config) {
		c.BlockComments = true
	}
}

// WithMaxFileSize rejects files larger than n bytes. Zero disables the limit.
func WithMaxFileSize(n int64) Option {
	return func(c *checker.Config) {
		c.MaxFileSize = n
	}
}

// WithLogger sends debug logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *checker.Config) {
		c.Logger = logger
	}
}

// New creates a Checker with the given options.
func New(opts ...Option) *Checker {
	var config checker.Config
	for _, opt := range opts {
		opt(&config)
	}
	return &Checker{checker: checker.New(config)}
}

// CheckFile reads and checks a file. Errors are returned only when the file
// cannot be read; structural problems are reported in the Result.
func (c *Checker) CheckFile(ctx context.Context, path string) (*Result, error) {
	return c.checker.CheckFile(ctx, path)
}

// CheckString checks in-memory source text.
func (c *Checker) CheckString(content string) (*Result, error) {
	return c.checker.CheckReader(context.Background(), strings.NewReader(content))
}

// CheckBytes checks in-memory source bytes.
func (c *Checker) CheckBytes(content []byte) (*Result, error) {
	return c.CheckString(string(content))
}
