package compile

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/pattern"
)

// stdlibRule installs one Functional/Pattern constraint (spec.md §4.3,
// §4.4) per declaration header it recognizes in the field's already-
// collapsed *trigger* keyword (fn/type/import/region), using the built-in
// pattern.Stdlib() library. The window a constraint binds can still reach
// cells that are not collapsed yet — seedStates seeds a regime word (FIFO/
// FILO/SEQ/RAND) with both a keyword and an identifier reading, and
// RegionDeclHeader's Superposition over the four regime literals narrows
// that cell for real the first time PropagateInitial runs (spec.md §8 E6).
// Beyond that, a constraint's job is to reject a declaration keyword
// followed by a malformed header shape, producing a Syntax contradiction
// at the keyword's cell rather than letting the malformed header surface
// as a confusing failure somewhere downstream.
//
// This rule is installed before the engine's first Propagate, unlike
// region.Rule which only makes sense once the field has already reached a
// fixed point.
type stdlibRule struct {
	library *pattern.Library
}

func newStdlibRule() *stdlibRule {
	return &stdlibRule{library: pattern.Stdlib()}
}

func (*stdlibRule) Name() string { return "stdlib-declaration-headers" }

func (*stdlibRule) Description() string {
	return "validates FunctionDecl/RegionDecl/TypeDecl/ImportDecl headers against the built-in pattern library"
}

func (r *stdlibRule) Apply(f *field.Field) []field.Constraint {
	var out []field.Constraint

	cells := f.Cells()

	for i, c := range cells {
		if !c.IsCollapsed() {
			continue
		}

		s := c.CollapsedState()
		if s.Payload.Kind != field.LexicalPayload || s.Payload.Token.Type.String() != "keyword" {
			continue
		}

		patternName, width := r.headerFor(s.Payload.Token.Text, cells, i)
		if patternName == "" {
			continue
		}

		root, ok := r.library.Get(patternName)
		if !ok {
			continue
		}

		window := windowCells(cells, i, width)
		out = append(out, pattern.CompileToConstraint(r.library, fmt.Sprintf("%s:%d", patternName, i), root, window))
	}

	return out
}

// headerFor reports which stdlib pattern (if any) starts at keyword text
// kw at cells[i], and how many cells its header spans — computed by the
// same kind of bounded lookahead region.Build uses for the optional
// `regime` clause, since patternConstraint.Validate requires the bound
// window to match exactly (spec.md §4.4: "the token sequence matches the
// pattern language", a full-window consumption, not a prefix).
func (r *stdlibRule) headerFor(kw string, cells []*field.Cell, i int) (name string, width int) {
	switch kw {
	case "fn":
		return "FunctionDeclHeader", 3
	case "type":
		return "TypeDeclHeader", 2
	case "import":
		return "ImportDecl", 2
	case "region":
		if hasRegimeClause(cells, i+2) {
			return "RegionDeclHeader", 5
		}

		return "RegionDeclHeader", 3
	default:
		return "", 0
	}
}

// hasRegimeClause reports whether a `regime` keyword cell sits at index j.
func hasRegimeClause(cells []*field.Cell, j int) bool {
	if j < 0 || j >= len(cells) || !cells[j].IsCollapsed() {
		return false
	}

	s := cells[j].CollapsedState()

	return s.Payload.Kind == field.LexicalPayload &&
		s.Payload.Token.Type.String() == "keyword" &&
		s.Payload.Token.Text == "regime"
}

func windowCells(cells []*field.Cell, start, width int) []field.CellID {
	end := start + width
	if end > len(cells) {
		end = len(cells)
	}

	ids := make([]field.CellID, 0, end-start)
	for _, c := range cells[start:end] {
		ids = append(ids, c.ID())
	}

	return ids
}
