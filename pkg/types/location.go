package types

import "fmt"

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String formats the point as "line:column".
func (p SourcePoint) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
