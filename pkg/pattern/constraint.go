package pattern

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/field"
)

// patternConstraint is the Functional/Pattern constraint family from
// spec.md §4.3: it wraps a grammar Pattern and a run of bound cells, and
// succeeds iff the cells' live states admit at least one complete parse.
type patternConstraint struct {
	name    string
	library *Library
	root    Pattern
	cells   []field.CellID
}

// CompileToConstraint compiles a Pattern into a field.Constraint bound
// over bindingCells, per spec.md §4.4's `compile_to_constraint(root,
// binding_cells)`.
func CompileToConstraint(library *Library, name string, root Pattern, bindingCells []field.CellID) field.Constraint {
	return &patternConstraint{
		name:    name,
		library: library,
		root:    root,
		cells:   bindingCells,
	}
}

func (c *patternConstraint) Name() string          { return c.name }
func (c *patternConstraint) Kind() field.Kind      { return field.SyntaxKind }
func (c *patternConstraint) Cells() []field.CellID { return c.cells }

func (c *patternConstraint) Validate(view field.View) field.Result {
	m := newMatcher(c.cells, view, c.library)

	ok, retain, failCell := m.run(c.root)
	if !ok {
		return field.Contradiction(
			failCell,
			fmt.Sprintf("no alternative of pattern %q matches here", c.name),
			"violated constraint: grammar pattern",
		)
	}

	return field.ReduceTo(retain)
}
