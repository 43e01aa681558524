package scanner

import "github.com/praetorian-inc/nestcheck/pkg/types"

// Options configures a Core. It is decoded from JSON by NewCore.
type Options struct {
	BlockComments bool  `json:"block_comments"`
	MaxFileSize   int64 `json:"max_file_size"`
}

// ContentItem is one in-memory buffer to check.
type ContentItem struct {
	Source  string `json:"source"`  // e.g., "editor:buffer", reported back as the result path
	Content string `json:"content"` // text to check
}

// ScanResult is the outcome of checking one buffer or file. Error is set
// instead of Result when the input could not be checked at all.
type ScanResult struct {
	Source  string        `json:"source"`
	Valid   bool          `json:"valid"`
	Message string        `json:"message,omitempty"`
	Result  *types.Result `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// BatchScanResult collects the results of a batch in input order.
type BatchScanResult struct {
	Results []ScanResult `json:"results"`
	Total   int          `json:"total"`   // items checked
	Invalid int          `json:"invalid"` // items with a structural problem
}

// DebugLogger receives diagnostic messages from a Core.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
