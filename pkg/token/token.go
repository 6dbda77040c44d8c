// Package token implements the Source & Token Model (spec.md §3–§4.1): an
// immutable Token carries its Type, raw Text and Position; the Tokenizer
// consumes a source.Source and yields a finite sequence of Tokens
// terminated by exactly one Eof token. Tokens are immutable once created;
// ownership passes from the Tokenizer into the entropy field when the field
// is seeded.
package token

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/source"
)

// Type classifies a Token. The set is fixed by spec.md §3.
type Type uint8

// Token type constants, per spec.md §3.
const (
	Invalid Type = iota
	Identifier
	Keyword
	IntLiteral
	FloatLiteral
	StringLiteral
	CharLiteral
	Operator
	Punctuation
	Comment
	Whitespace
	Newline
	Eof
)

// names gives each Type a short human-readable label for diagnostics and
// the %v/String() formatting.
var names = map[Type]string{
	Invalid:       "invalid",
	Identifier:    "identifier",
	Keyword:       "keyword",
	IntLiteral:    "int-literal",
	FloatLiteral:  "float-literal",
	StringLiteral: "string-literal",
	CharLiteral:   "char-literal",
	Operator:      "operator",
	Punctuation:   "punctuation",
	Comment:       "comment",
	Whitespace:    "whitespace",
	Newline:       "newline",
	Eof:           "eof",
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}

	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsTrivia reports whether tokens of this type are filtered out before
// reaching the entropy field (spec.md §4.1): whitespace and comments are
// still emitted by the Tokenizer, but never become Cells.
func (t Type) IsTrivia() bool {
	return t == Whitespace || t == Comment || t == Newline
}

// Token is an immutable lexical unit. Two tokens are never the same value
// once constructed — Position distinguishes otherwise-identical tokens
// (e.g. two "fn" keywords at different places in the source).
type Token struct {
	Type     Type
	Text     string
	Position source.Position
}

// String renders a token for debugging/logging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Text, t.Position.Line, t.Position.Column)
}
