// Package constraint implements the Adjacency constraint family (spec.md
// §4.3): a cell's state is valid only if a neighbouring cell allows a
// specified successor, which is how grammar order beyond what the Pattern
// Library expresses (pkg/pattern) gets encoded directly over the field.
package constraint

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/field"
)

// Admits reports whether a (left, right) pair of states is an allowed
// adjacency, by type tag and optional literal label. Concrete Rules
// (pkg/region, a future pkg/typecheck, etc.) supply one of these per
// Adjacency constraint they install.
type Admits func(left, right field.State) bool

// Adjacency binds exactly two cells, left and right, and only (left-state,
// right-state) pairs admitted by the Admits predicate may coexist. The
// cells' positions are not checked: the two need not be neighbours.
type Adjacency struct {
	name   string
	kind   field.Kind
	left   field.CellID
	right  field.CellID
	admits Admits
}

// NewAdjacency constructs an Adjacency constraint between two cells.
func NewAdjacency(name string, kind field.Kind, left, right field.CellID, admits Admits) *Adjacency {
	return &Adjacency{name: name, kind: kind, left: left, right: right, admits: admits}
}

func (a *Adjacency) Name() string          { return a.name }
func (a *Adjacency) Kind() field.Kind      { return a.kind }
func (a *Adjacency) Cells() []field.CellID { return []field.CellID{a.left, a.right} }

func (a *Adjacency) Validate(view field.View) field.Result {
	leftStates := view.LiveStates(a.left)
	rightStates := view.LiveStates(a.right)

	keepLeft := make(map[field.StateID]bool)
	keepRight := make(map[field.StateID]bool)

	for _, l := range leftStates {
		for _, r := range rightStates {
			if a.admits(l, r) {
				keepLeft[l.ID] = true
				keepRight[r.ID] = true
			}
		}
	}

	if len(keepLeft) == 0 || len(keepRight) == 0 {
		emptied := a.left
		if len(keepLeft) != 0 {
			emptied = a.right
		}

		return field.Contradiction(
			emptied,
			fmt.Sprintf("no admissible adjacency between cell %d and cell %d", a.left, a.right),
			"violated constraint: "+a.name,
		)
	}

	return field.ReduceTo(map[field.CellID]map[field.StateID]bool{
		a.left:  keepLeft,
		a.right: keepRight,
	})
}
