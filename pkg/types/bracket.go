package types

import "fmt"

// Bracket is one of the six tracked bracket characters.
type Bracket rune

const (
	OpenBrace    Bracket = '{'
	CloseBrace   Bracket = '}'
	OpenBracket  Bracket = '['
	CloseBracket Bracket = ']'
	OpenParen    Bracket = '('
	CloseParen   Bracket = ')'
)

// closers maps each opener to the closer of its family.
var closers = map[Bracket]Bracket{
	OpenBrace:   CloseBrace,
	OpenBracket: CloseBracket,
	OpenParen:   CloseParen,
}

// AsBracket reports whether r is a tracked bracket and returns it.
func AsBracket(r rune) (Bracket, bool) {
	switch b := Bracket(r); b {
	case OpenBrace, CloseBrace, OpenBracket, CloseBracket, OpenParen, CloseParen:
		return b, true
	}
	return 0, false
}

// IsOpener reports whether b opens a bracket family.
func (b Bracket) IsOpener() bool {
	_, ok := closers[b]
	return ok
}

// IsCloser reports whether b closes a bracket family.
func (b Bracket) IsCloser() bool {
	return b == CloseBrace || b == CloseBracket || b == CloseParen
}

// Closer returns the closer expected for opener b, or 0 if b is not an opener.
func (b Bracket) Closer() Bracket {
	return closers[b]
}

func (b Bracket) String() string {
	return string(rune(b))
}

// MarshalText renders the bracket as its single character, so JSON and YAML
// output show "{" rather than a code point.
func (b Bracket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a single bracket character.
func (b *Bracket) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 1 {
		return fmt.Errorf("invalid bracket %q", text)
	}
	parsed, ok := AsBracket(runes[0])
	if !ok {
		return fmt.Errorf("invalid bracket %q", text)
	}
	*b = parsed
	return nil
}

// Token is a bracket and its zero-based rune index within a line.
type Token struct {
	Char  Bracket
	Index int
}

// StackEntry records an open bracket and where it was opened.
type StackEntry struct {
	Char     Bracket     `json:"char" yaml:"char"`
	Position SourcePoint `json:"position" yaml:"position"`
}
