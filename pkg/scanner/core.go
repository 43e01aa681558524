package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/praetorian-inc/nestcheck/pkg/checker"
	"github.com/praetorian-inc/nestcheck/pkg/types"
)

// ErrClosed is returned when a closed Core is used.
var ErrClosed = errors.New("core is closed")

// Core holds one configured checker for long-lived callers such as the
// streaming server and the WebAssembly bridge.
type Core struct {
	checker *checker.Checker
	logger  DebugLogger
}

// NewCore creates a new Core.
// optionsJSON can be:
// - "" to use defaults (no block comments, no size limit)
// - JSON object decoded into Options
func NewCore(optionsJSON string, logger DebugLogger) (*Core, error) {
	var opts Options
	if optionsJSON != "" {
		if err := json.Unmarshal([]byte(optionsJSON), &opts); err != nil {
			return nil, fmt.Errorf("parsing options: %w", err)
		}
	}
	return NewCoreWithOptions(opts, logger)
}

// NewCoreWithOptions creates a new Core from decoded options.
func NewCoreWithOptions(opts Options, logger DebugLogger) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}
	if opts.MaxFileSize < 0 {
		return nil, errors.New("max_file_size must not be negative")
	}
	logger.Log("core: block_comments=%v max_file_size=%d", opts.BlockComments, opts.MaxFileSize)

	return &Core{
		checker: checker.New(checker.Config{
			BlockComments: opts.BlockComments,
			MaxFileSize:   opts.MaxFileSize,
		}),
		logger: logger,
	}, nil
}

// Check checks content and reports it under source. Cancelling ctx stops the
// check at the next line boundary.
func (c *Core) Check(ctx context.Context, content, source string) (*ScanResult, error) {
	if c.checker == nil {
		return nil, ErrClosed
	}
	result, err := c.checker.CheckReader(ctx, strings.NewReader(content))
	if err != nil {
		c.logger.Log("check %s: %v", source, err)
		return nil, err
	}
	result.Path = source
	return newScanResult(source, result), nil
}

// CheckFile checks the file at path.
func (c *Core) CheckFile(ctx context.Context, path string) (*ScanResult, error) {
	if c.checker == nil {
		return nil, ErrClosed
	}
	result, err := c.checker.CheckFile(ctx, path)
	if err != nil {
		c.logger.Log("check file %s: %v", path, err)
		return nil, err
	}
	return newScanResult(path, result), nil
}

// CheckBatch checks items in order. An item that cannot be checked is
// recorded with its error and the batch goes on, except when ctx is done:
// then the results gathered so far are returned with ctx's error.
func (c *Core) CheckBatch(ctx context.Context, items []ContentItem) (*BatchScanResult, error) {
	if c.checker == nil {
		return nil, ErrClosed
	}
	batch := &BatchScanResult{Results: make([]ScanResult, 0, len(items))}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		res, err := c.Check(ctx, item.Content, item.Source)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return batch, ctxErr
			}
			batch.Results = append(batch.Results, ScanResult{Source: item.Source, Error: err.Error()})
			continue
		}
		batch.Results = append(batch.Results, *res)
		batch.Total++
		if !res.Valid {
			batch.Invalid++
		}
	}

	c.logger.Log("batch: %d items, %d checked, %d invalid", len(items), batch.Total, batch.Invalid)
	return batch, nil
}

// Close releases the checker. Later calls fail with ErrClosed.
func (c *Core) Close() {
	c.checker = nil
}

// Rules returns the problem kinds a check can report
func Rules() []*types.Rule {
	return types.Rules()
}

func newScanResult(source string, result *types.Result) *ScanResult {
	return &ScanResult{
		Source:  source,
		Valid:   result.Valid(),
		Message: result.Message(),
		Result:  result,
	}
}
