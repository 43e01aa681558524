package types

import "fmt"

// ProblemKind classifies a structural error.
type ProblemKind int

const (
	// UnexpectedCloser is a closer seen while no bracket is open.
	UnexpectedCloser ProblemKind = iota + 1
	// MismatchedCloser is a closer whose family differs from the innermost open bracket.
	MismatchedCloser
	// UnclosedOpener is an opener still open at end of input.
	UnclosedOpener
)

// ID returns the stable identifier used in JSON, YAML and SARIF output.
func (k ProblemKind) ID() string {
	switch k {
	case UnexpectedCloser:
		return "unexpected-closer"
	case MismatchedCloser:
		return "mismatched-closer"
	case UnclosedOpener:
		return "unclosed-opener"
	default:
		return "unknown"
	}
}

func (k ProblemKind) String() string {
	return k.ID()
}

// MarshalText renders the kind by its ID.
func (k ProblemKind) MarshalText() ([]byte, error) {
	return []byte(k.ID()), nil
}

// UnmarshalText parses a kind from its ID.
func (k *ProblemKind) UnmarshalText(text []byte) error {
	for _, candidate := range []ProblemKind{UnexpectedCloser, MismatchedCloser, UnclosedOpener} {
		if candidate.ID() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown problem kind %q", text)
}

// Problem is the first structural error found in a file.
type Problem struct {
	Kind     ProblemKind `json:"kind" yaml:"kind"`
	Char     Bracket     `json:"char" yaml:"char"`
	Position SourcePoint `json:"position" yaml:"position"`
	// Opener is the popped entry a MismatchedCloser was compared against.
	Opener *StackEntry `json:"opener,omitempty" yaml:"opener,omitempty"`
}

// Message renders the problem as a single human-readable line.
func (p *Problem) Message() string {
	switch p.Kind {
	case UnexpectedCloser:
		return fmt.Sprintf("Error: Unexpected '%s' at line %d, col %d", p.Char, p.Position.Line, p.Position.Column)
	case MismatchedCloser:
		openChar, openLine := Bracket('?'), 0
		if p.Opener != nil {
			openChar, openLine = p.Opener.Char, p.Opener.Position.Line
		}
		return fmt.Sprintf("Error: Mismatched '%s' at line %d, col %d. Expected closing for '%s' from line %d",
			p.Char, p.Position.Line, p.Position.Column, openChar, openLine)
	case UnclosedOpener:
		return fmt.Sprintf("Error: Unclosed '%s' from line %d, col %d", p.Char, p.Position.Line, p.Position.Column)
	default:
		return fmt.Sprintf("Error: unknown problem at line %d, col %d", p.Position.Line, p.Position.Column)
	}
}

// ValidMessage is printed when no problem is found.
const ValidMessage = "Structure seems valid"

// Result is the outcome of checking one input.
type Result struct {
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Lines    int      `json:"lines" yaml:"lines"`
	MaxDepth int      `json:"max_depth" yaml:"max_depth"`
	Problem  *Problem `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// Valid reports whether the input has well-formed nesting.
func (r *Result) Valid() bool {
	return r.Problem == nil
}

// Message renders the one-line report for this result.
func (r *Result) Message() string {
	if r.Problem == nil {
		return ValidMessage
	}
	return r.Problem.Message()
}
