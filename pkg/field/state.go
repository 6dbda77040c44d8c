// Package field implements the Entropy Field (spec.md §3–§4.2): an ordered
// sequence of Cells, each owning a set of candidate States, plus the
// Constraints and Rules bound over them. This package also defines the
// Constraint and Rule interfaces (spec.md §4.3): concrete constraint kinds
// live in pkg/pattern, pkg/constraint and pkg/region, all of which import
// field rather than the reverse, so the Field never needs to know about
// its own constraints' implementations (spec.md §9's arena-plus-index
// guidance against cyclic references).
package field

import "github.com/iregaddr/braggi/pkg/token"

// StateID uniquely identifies a State within a Field. State identities are
// stable for the Field's lifetime — elimination clears the state's bit in
// its Cell's live set rather than deleting the State, so a Constraint's
// reference to a StateID remains valid even after the state is no longer
// live. The State's Weight is left at its seeded value.
type StateID uint32

// PayloadKind distinguishes what a State's payload carries.
type PayloadKind uint8

// Payload kinds, per spec.md §3: lexical cells carry a Token reference,
// derived cells carry a semantic tag.
const (
	LexicalPayload PayloadKind = iota
	SemanticPayload
)

// Payload is the interpretation a State assigns to its Cell.
type Payload struct {
	Kind PayloadKind
	// Token is set when Kind == LexicalPayload.
	Token token.Token
	// Tag is set when Kind == SemanticPayload — e.g. "region", "regime:SEQ",
	// "periscope-direction:OUT".
	Tag string
}

// TokenPayload constructs a lexical Payload wrapping a Token.
func TokenPayload(tok token.Token) Payload {
	return Payload{Kind: LexicalPayload, Token: tok}
}

// SemanticPayload constructs a derived Payload carrying a semantic tag.
func SemanticTagPayload(tag string) Payload {
	return Payload{Kind: SemanticPayload, Tag: tag}
}

// State is one candidate interpretation of a Cell (spec.md §3). Weight is a
// non-negative integer proportional to prior probability. Elimination does
// not change Weight: whether a state is still live is recorded by its Cell
// (see StateID's docs and Cell.LiveStates).
type State struct {
	ID      StateID
	TypeTag string
	Label   string
	Payload Payload
	Weight  uint64
}

// Live reports whether this state carries a non-zero Weight. It does not
// reflect elimination, which only the owning Cell's live set records.
func (s State) Live() bool {
	return s.Weight > 0
}
