package region

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/constraint"
	"github.com/iregaddr/braggi/pkg/field"
)

// Compatible reports whether a periscope in the given direction is
// admissible from regime `from` to regime `to`, per the matrix in spec.md
// §4.6. IN and OUT consult the matching half of the table entry;
// BIDIRECTIONAL requires both halves to hold, which the table grants for
// FIFO -> FIFO, FIFO -> SEQ, FILO -> FILO, SEQ -> SEQ and RAND -> RAND.
func Compatible(from, to Regime, dir Direction) bool {
	e := compatTable[from][to]

	switch dir {
	case In:
		return e.In
	case Out:
		return e.Out
	default:
		return e.In && e.Out
	}
}

// Suggest searches the compatibility table for a regime substitute that
// would make a currently-inadmissible (from, to, dir) triple admissible,
// preferring a change to `from` (the source) over `to`, matching spec.md
// §4.6's example suggestion ("change source regime to SEQ"). Returns false
// if no single-sided substitution exists.
func Suggest(from, to Regime, dir Direction) (message string, ok bool) {
	for r := Regime(0); int(r) < len(regimeNames); r++ {
		if r == from {
			continue
		}

		if Compatible(r, to, dir) {
			return fmt.Sprintf("change source regime from %s to %s", from, r), true
		}
	}

	for r := Regime(0); int(r) < len(regimeNames); r++ {
		if r == to {
			continue
		}

		if Compatible(from, r, dir) {
			return fmt.Sprintf("change target regime from %s to %s", to, r), true
		}
	}

	return "", false
}

// containmentConstraint enforces that a child region's cell extent is
// fully contained within its parent's (spec.md §4.6's "Containment").
// Region extents are derived by Build before any constraint runs, so this
// constraint's Cells list is the two region-boundary cells on each side —
// it validates once propagation reaches a fixed point over syntax, then
// reports rather than narrows, since region boundaries are themselves
// syntactic facts, not candidate states to retain among.
type containmentConstraint struct {
	tree  *Tree
	child ID
}

// NewContainmentConstraint builds a containment check for one parent/child
// region pair out of tree.
func NewContainmentConstraint(tree *Tree, child ID) field.Constraint {
	return &containmentConstraint{tree: tree, child: child}
}

func (c *containmentConstraint) Name() string {
	return fmt.Sprintf("region-containment:%d", c.child)
}

func (c *containmentConstraint) Kind() field.Kind { return field.RegionKind }

func (c *containmentConstraint) Cells() []field.CellID {
	child, ok := c.tree.Region(c.child)
	if !ok {
		return nil
	}

	return []field.CellID{child.FirstCell, child.LastCell}
}

func (c *containmentConstraint) Validate(view field.View) field.Result {
	child, ok := c.tree.Region(c.child)
	if !ok || child.Parent.IsEmpty() {
		return field.OK()
	}

	parent, ok := c.tree.Region(child.Parent.Unwrap())
	if !ok {
		return field.OK()
	}

	if child.FirstCell < parent.FirstCell || child.LastCell > parent.LastCell {
		return field.Contradiction(child.FirstCell,
			fmt.Sprintf("region %q is not contained within its parent region %q", child.Name, parent.Name),
			fmt.Sprintf("child extent [%d,%d] escapes parent extent [%d,%d]", child.FirstCell, child.LastCell, parent.FirstCell, parent.LastCell))
	}

	return field.OK()
}

// NewRegimeDeclarationConstraint enforces spec.md §4.6's "Regime
// declaration": the regime-value cell (the one after a region's `regime`
// keyword) must carry one of {FIFO, FILO, SEQ, RAND}, checked against its
// state's Label. Build already defaults an omitted regime to RAND, so this
// is only ever installed for a region that actually had a regime clause. It
// reuses spec.md §4.3's Adjacency family, binding the region cell and the
// regime-value cell; the two cells are not adjacent in the source.
func NewRegimeDeclarationConstraint(regionCell, regimeCell field.CellID) field.Constraint {
	return constraint.NewAdjacency(
		fmt.Sprintf("regime-declaration:%d", regionCell),
		field.RegimeKind,
		regionCell, regimeCell,
		func(_, right field.State) bool {
			_, ok := ParseRegime(right.Label)
			return ok
		},
	)
}

// periscopeCompatConstraint enforces spec.md §4.6's "Periscope
// compatibility": the (source_regime, target_regime, direction) triple for
// every periscope must be admissible per the matrix.
type periscopeCompatConstraint struct {
	tree   *Tree
	source ID
	index  int // index into tree's source region's Periscopes slice
}

// NewPeriscopeCompatConstraint builds a compatibility check for one
// periscope edge, identified by its owning region and index within it.
func NewPeriscopeCompatConstraint(tree *Tree, source ID, index int) field.Constraint {
	return &periscopeCompatConstraint{tree: tree, source: source, index: index}
}

func (c *periscopeCompatConstraint) periscope() (Periscope, bool) {
	r, ok := c.tree.Region(c.source)
	if !ok || c.index < 0 || c.index >= len(r.Periscopes) {
		return Periscope{}, false
	}

	return r.Periscopes[c.index], true
}

func (c *periscopeCompatConstraint) Name() string {
	return fmt.Sprintf("periscope-compat:%d:%d", c.source, c.index)
}

func (c *periscopeCompatConstraint) Kind() field.Kind { return field.PeriscopeKind }

func (c *periscopeCompatConstraint) Cells() []field.CellID {
	p, ok := c.periscope()
	if !ok {
		return nil
	}

	return []field.CellID{p.Cell}
}

func (c *periscopeCompatConstraint) Validate(view field.View) field.Result {
	p, ok := c.periscope()
	if !ok {
		return field.OK()
	}

	source, ok := c.tree.Region(c.source)
	if !ok {
		return field.OK()
	}

	target, ok := c.tree.Region(p.Target)
	if !ok {
		return field.OK()
	}

	if Compatible(source.Regime, target.Regime, p.Direction) {
		return field.OK()
	}

	message := fmt.Sprintf("periscope from %s to %s is incompatible with direction %s", source.Regime, target.Regime, p.Direction)
	detail := fmt.Sprintf("source regime %s, target regime %s", source.Regime, target.Regime)

	if suggestion, ok := Suggest(source.Regime, target.Regime, p.Direction); ok {
		detail += "; suggestion: " + suggestion
	}

	return field.Contradiction(p.Cell, message, detail)
}

// lifetimeConstraint enforces spec.md §4.6's "Lifetime": an allocation's
// lifetime must be contained in its owning region's lifetime.
type lifetimeConstraint struct {
	tree   *Tree
	region ID
	index  int // index into the owning region's Allocations slice
}

// NewLifetimeConstraint builds a lifetime-containment check for one
// allocation, identified by its owning region and index within it.
func NewLifetimeConstraint(tree *Tree, region ID, index int) field.Constraint {
	return &lifetimeConstraint{tree: tree, region: region, index: index}
}

func (c *lifetimeConstraint) allocation() (Allocation, Region, bool) {
	r, ok := c.tree.Region(c.region)
	if !ok || c.index < 0 || c.index >= len(r.Allocations) {
		return Allocation{}, Region{}, false
	}

	return r.Allocations[c.index], r, true
}

func (c *lifetimeConstraint) Name() string {
	return fmt.Sprintf("lifetime:%d:%d", c.region, c.index)
}

func (c *lifetimeConstraint) Kind() field.Kind { return field.RegionKind }

func (c *lifetimeConstraint) Cells() []field.CellID {
	a, _, ok := c.allocation()
	if !ok {
		return nil
	}

	return []field.CellID{a.Cell, a.LifetimeEnd}
}

func (c *lifetimeConstraint) Validate(view field.View) field.Result {
	a, r, ok := c.allocation()
	if !ok {
		return field.OK()
	}

	if a.Cell < r.FirstCell || a.LifetimeEnd > r.LastCell {
		return field.Contradiction(a.Cell,
			fmt.Sprintf("allocation's lifetime escapes its owning region %q", r.Name),
			fmt.Sprintf("allocation extent [%d,%d] escapes region extent [%d,%d]", a.Cell, a.LifetimeEnd, r.FirstCell, r.LastCell))
	}

	return field.OK()
}
