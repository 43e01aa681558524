package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/nestcheck/pkg/scanner"
)

// Request types.
const (
	TypeCheck      = "check"
	TypeCheckBatch = "check_batch"
	TypeCheckFile  = "check_file"
	TypeRules      = "rules"
	TypeClose      = "close"
)

// Response-only types.
const (
	TypeReady   = "ready"
	TypeDecode  = "decode"
	TypeUnknown = "unknown"
)

// Request is one NDJSON input line. ID is opaque and echoed in the response.
type Request struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CheckPayload is the payload for "check" requests
type CheckPayload struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// CheckBatchPayload is the payload for "check_batch" requests
type CheckBatchPayload struct {
	Items []scanner.ContentItem `json:"items"`
}

// CheckFilePayload is the payload for "check_file" requests
type CheckFilePayload struct {
	Path string `json:"path"`
}

// Response is one NDJSON output line.
type Response struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data of the first response.
type ReadyData struct {
	Version  string   `json:"version"`
	Requests []string `json:"requests"`
}
