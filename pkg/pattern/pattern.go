// Package pattern implements the Pattern Library (spec.md §4.4): grammar
// patterns — token, sequence, superposition, repetition, optional and
// named reference — compiled into field.Constraint validators that a Rule
// can bind over a run of cells.
package pattern

// Pattern is one node of a grammar pattern tree. The variants below are
// the only implementations; a switch over concrete type in the matcher
// (match.go) dispatches on them, mirroring a small closed sum type.
type Pattern interface {
	isPattern()
}

// Token matches exactly one cell whose chosen state has the given type
// tag, and whose label equals Literal when Literal is non-empty.
type Token struct {
	TypeTag string
	Literal string
}

func (Token) isPattern() {}

// NewToken constructs a Token pattern matching any state of the given
// type tag.
func NewToken(typeTag string) Token {
	return Token{TypeTag: typeTag}
}

// NewLiteral constructs a Token pattern additionally requiring an exact
// label match (e.g. a specific keyword or operator spelling).
func NewLiteral(typeTag, literal string) Token {
	return Token{TypeTag: typeTag, Literal: literal}
}

// Sequence matches its sub-patterns one after another, consuming one cell
// per Token leaf encountered along the way.
type Sequence struct {
	Parts []Pattern
}

func (Sequence) isPattern() {}

// NewSequence builds a Sequence pattern.
func NewSequence(parts ...Pattern) Sequence {
	return Sequence{Parts: parts}
}

// Superposition tries every one of its alternatives; the match succeeds if
// any alternative leads to a complete parse, and the states retained are
// the union over all such parses. Matching does not stop at the first
// alternative that succeeds.
type Superposition struct {
	Alternatives []Pattern
}

func (Superposition) isPattern() {}

// NewSuperposition builds a Superposition pattern.
func NewSuperposition(alternatives ...Pattern) Superposition {
	return Superposition{Alternatives: alternatives}
}

// Repetition matches its sub-pattern zero or more times. Every repetition
// count that lets the rest of the pattern complete is explored, starting
// from zero, and each contributes to the retained states.
type Repetition struct {
	Sub Pattern
}

func (Repetition) isPattern() {}

// NewRepetition builds a Repetition pattern.
func NewRepetition(sub Pattern) Repetition {
	return Repetition{Sub: sub}
}

// Optional matches its sub-pattern zero or one times.
type Optional struct {
	Sub Pattern
}

func (Optional) isPattern() {}

// NewOptional builds an Optional pattern.
func NewOptional(sub Pattern) Optional {
	return Optional{Sub: sub}
}

// Reference is indirection to a named pattern resolved from a Library at
// match time. Cycles are permitted provided every cycle consumes at least
// one cell — the matcher does not otherwise guard against infinite
// recursion.
type Reference struct {
	Name string
}

func (Reference) isPattern() {}

// NewReference builds a Reference pattern.
func NewReference(name string) Reference {
	return Reference{Name: name}
}
