// Package checker validates bracket nesting over the lines of a source file.
package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/praetorian-inc/nestcheck/pkg/tokenizer"
	"github.com/praetorian-inc/nestcheck/pkg/types"
)

// ErrFileTooLarge is returned when input exceeds Config.MaxFileSize.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ErrInvalidUTF8 is returned when input is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Config configures a Checker.
type Config struct {
	BlockComments bool         // recognize /* ... */ comments
	MaxFileSize   int64        // 0 means unlimited
	Logger        *slog.Logger // nil discards logs
}

// Checker runs the bracket balance check.
type Checker struct {
	config Config
	logger *slog.Logger
}

// New creates a Checker.
func New(config Config) *Checker {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{config: config, logger: logger}
}

// CheckFile reads path and checks its nesting. Failures to open or read the
// file are returned as errors; structural problems are reported in the result.
func (c *Checker) CheckFile(ctx context.Context, path string) (*types.Result, error) {
	lines, err := c.readFile(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loaded file", "path", path, "lines", len(lines))

	result, err := c.CheckLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	result.Path = path
	return result, nil
}

// CheckReader reads r to the end and checks its nesting.
func (c *Checker) CheckReader(ctx context.Context, r io.Reader) (*types.Result, error) {
	var src io.Reader = r
	if c.config.MaxFileSize > 0 {
		src = io.LimitReader(r, c.config.MaxFileSize+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if c.config.MaxFileSize > 0 && int64(len(content)) > c.config.MaxFileSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, c.config.MaxFileSize)
	}
	lines, err := decodeLines(content)
	if err != nil {
		return nil, err
	}
	return c.CheckLines(ctx, lines)
}

// CheckLines checks already loaded lines. Line numbers in the result are
// 1-based positions in lines. Invalid UTF-8 in lines is read as U+FFFD.
func (c *Checker) CheckLines(ctx context.Context, lines []string) (*types.Result, error) {
	tz := tokenizer.New(c.config.BlockComments)
	result := &types.Result{Lines: len(lines)}
	var stack []types.StackEntry

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNum := i + 1

		for _, tok := range tz.Line(line) {
			pos := types.SourcePoint{Line: lineNum, Column: tok.Index + 1}

			switch {
			case tok.Char.IsOpener():
				stack = append(stack, types.StackEntry{Char: tok.Char, Position: pos})
				if len(stack) > result.MaxDepth {
					result.MaxDepth = len(stack)
				}

			case tok.Char.IsCloser():
				if len(stack) == 0 {
					result.Problem = &types.Problem{Kind: types.UnexpectedCloser, Char: tok.Char, Position: pos}
					c.logProblem(result)
					return result, nil
				}

				last := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if last.Char.Closer() != tok.Char {
					result.Problem = &types.Problem{
						Kind:     types.MismatchedCloser,
						Char:     tok.Char,
						Position: pos,
						Opener:   &last,
					}
					c.logProblem(result)
					return result, nil
				}
			}
		}
	}

	if tz.InBlockComment() {
		c.logger.Debug("input ends inside a block comment", "lines", result.Lines)
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		result.Problem = &types.Problem{Kind: types.UnclosedOpener, Char: top.Char, Position: top.Position}
		c.logProblem(result)
		return result, nil
	}

	c.logger.Debug("structure valid", "lines", result.Lines, "max_depth", result.MaxDepth)
	return result, nil
}

func (c *Checker) readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if c.config.MaxFileSize > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat file: %w", err)
		}
		if info.Size() > c.config.MaxFileSize {
			return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFileTooLarge, path, info.Size(), c.config.MaxFileSize)
		}
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return decodeLines(content)
}

func decodeLines(content []byte) ([]string, error) {
	if !utf8.Valid(content) {
		return nil, ErrInvalidUTF8
	}
	return types.SplitLines(content), nil
}

func (c *Checker) logProblem(result *types.Result) {
	p := result.Problem
	c.logger.Debug("structural problem",
		"kind", p.Kind.ID(),
		"char", p.Char.String(),
		"position", p.Position.String())
}
