// Package tokenizer extracts bracket tokens from source lines, skipping the
// contents of string literals and comments.
package tokenizer

import "github.com/praetorian-inc/nestcheck/pkg/types"

type state int

const (
	stateCode state = iota
	stateString
	stateBlockComment
)

// Tokenizer scans lines one at a time. String and line comment state end with
// the line. Block comment state, when enabled, carries over to the next line.
type Tokenizer struct {
	// BlockComments enables recognition of /* ... */ comments. When false,
	// brackets inside block comments are tokenized like any other code.
	BlockComments bool

	state state
}

// New creates a tokenizer.
func New(blockComments bool) *Tokenizer {
	return &Tokenizer{BlockComments: blockComments}
}

// InBlockComment reports whether the last line ended inside a block comment.
func (t *Tokenizer) InBlockComment() bool {
	return t.state == stateBlockComment
}

// Line returns the bracket tokens of line that lie outside strings and
// comments, in order. Token indexes count runes, not bytes.
//
// Inside a string a backslash skips the next rune. A backslash at the end of
// the line skips nothing and the unterminated string is dropped with the line.
func (t *Tokenizer) Line(line string) []types.Token {
	runes := []rune(line)
	var tokens []types.Token
	var quote rune

	if t.state != stateBlockComment {
		t.state = stateCode
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch t.state {
		case stateString:
			if r == '\\' {
				i++
				continue
			}
			if r == quote {
				t.state = stateCode
			}
			continue

		case stateBlockComment:
			if r == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				t.state = stateCode
				i++
			}
			continue
		}

		if r == '/' && i+1 < len(runes) {
			if runes[i+1] == '/' {
				return tokens
			}
			if t.BlockComments && runes[i+1] == '*' {
				t.state = stateBlockComment
				i++
				continue
			}
		}

		if isQuote(r) {
			t.state = stateString
			quote = r
			continue
		}

		if b, ok := types.AsBracket(r); ok {
			tokens = append(tokens, types.Token{Char: b, Index: i})
		}
	}

	if t.state == stateString {
		t.state = stateCode
	}
	return tokens
}

// Line tokenizes a single line with block comments disabled.
func Line(line string) []types.Token {
	return New(false).Line(line)
}

func isQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '`'
}
