package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/praetorian-inc/nestcheck/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "nestcheck"
)

// ToolVersion is reported in the driver block. The CLI overrides it with
// its build version.
var ToolVersion = "0.1.0"

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool              Tool              `json:"tool"`
	AutomationDetails AutomationDetails `json:"automationDetails"`
	Results           []Result          `json:"results"`
}

// AutomationDetails identifies the run
type AutomationDetails struct {
	GUID string `json:"guid"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a problem kind
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single structural problem
type Result struct {
	RuleID           string     `json:"ruleId"`
	Level            string     `json:"level"`
	Message          Message    `json:"message"`
	Locations        []Location `json:"locations"`
	RelatedLocations []Location `json:"relatedLocations,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	ID               int              `json:"id,omitempty"`
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
	Message          *Message         `json:"message,omitempty"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range. A bracket spans one column.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules:   []Rule{},
					},
				},
				AutomationDetails: AutomationDetails{
					GUID: uuid.NewString(),
				},
				Results: []Result{},
			},
		},
	}
}

// AddRule adds a problem kind to the report
func (r *Report) AddRule(rule *types.Rule) {
	r.Runs[0].Tool.Driver.Rules = append(r.Runs[0].Tool.Driver.Rules, Rule{
		ID:   rule.ID,
		Name: rule.Name,
		ShortDescription: ShortDescription{
			Text: rule.Description,
		},
	})
}

// AddResult adds the problem of a check result to the report. Valid results
// add nothing.
func (r *Report) AddResult(result *types.Result) {
	p := result.Problem
	if p == nil {
		return
	}

	uri := formatFileURI(result.Path)

	sarifResult := Result{
		RuleID: p.Kind.ID(),
		Level:  "error",
		Message: Message{
			Text: p.Message(),
		},
		Locations: []Location{
			{PhysicalLocation: physicalLocation(uri, p.Position)},
		},
	}

	// A mismatched closer also points at the opener it was compared against
	if p.Opener != nil {
		sarifResult.RelatedLocations = []Location{
			{
				ID:               1,
				PhysicalLocation: physicalLocation(uri, p.Opener.Position),
				Message:          &Message{Text: "'" + p.Opener.Char.String() + "' opened here"},
			},
		}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, sarifResult)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func physicalLocation(uri string, pos types.SourcePoint) PhysicalLocation {
	return PhysicalLocation{
		ArtifactLocation: ArtifactLocation{URI: uri},
		Region: Region{
			StartLine:   pos.Line,
			StartColumn: pos.Column,
			EndLine:     pos.Line,
			EndColumn:   pos.Column + 1,
		},
	}
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
