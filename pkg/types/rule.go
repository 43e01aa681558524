package types

// Rule describes one problem kind for reporting.
type Rule struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Rules returns the fixed set of problem kinds the checker can report.
func Rules() []*Rule {
	return []*Rule{
		RuleFor(UnexpectedCloser),
		RuleFor(MismatchedCloser),
		RuleFor(UnclosedOpener),
	}
}

// RuleFor returns the rule describing kind k.
func RuleFor(k ProblemKind) *Rule {
	r := &Rule{ID: k.ID()}
	switch k {
	case UnexpectedCloser:
		r.Name = "Unexpected closer"
		r.Description = "A closing bracket appears with no open bracket to close"
	case MismatchedCloser:
		r.Name = "Mismatched closer"
		r.Description = "A closing bracket does not match the innermost open bracket"
	case UnclosedOpener:
		r.Name = "Unclosed opener"
		r.Description = "An opening bracket is still open at end of file"
	default:
		r.Name = "Unknown"
	}
	return r
}
