// Package region implements the Region & Regime Checker (spec.md §4.6):
// the lexical region tree derived from the collapsed syntactic states, its
// periscope compatibility matrix, and the constraint family that enforces
// containment, regime declaration, periscope compatibility and lifetime
// containment over that tree, expressed as field.Constraints exactly like
// pkg/pattern and pkg/constraint (spec.md §4.3's uniform constraint model).
package region

import (
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/util"
)

// Direction is a periscope's edge kind (spec.md §3).
type Direction uint8

// Periscope directions.
const (
	In Direction = iota
	Out
	Bidirectional
)

var directionNames = [...]string{"IN", "OUT", "BIDIRECTIONAL"}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}

	return "Unknown"
}

// ID identifies a Region within a Field's derived region tree.
type ID uint32

// Allocation is one lifetime-bound value owned by a Region (spec.md §3):
// cell is the cell whose collapse introduced it, and lifetimeEnd is the
// last cell of its lexical extent.
type Allocation struct {
	Cell        field.CellID
	LifetimeEnd field.CellID
}

// Periscope is a directed lifetime-extension edge between two Regions
// (spec.md §3): source and target name the regions by ID, direction is one
// of In/Out/Bidirectional, and cell is the `periscope` keyword's cell, for
// diagnostic positioning.
type Periscope struct {
	Cell      field.CellID
	Source    ID
	Target    ID
	Direction Direction
}

// Region is a lexical scope owning allocations with a shared lifetime
// (spec.md §3). Regions form a tree via Parent; the root region's Parent
// is util.None[ID]().
type Region struct {
	ID     ID
	Name   string
	Regime Regime

	// HasRegime and RegimeCell record whether this region's declaration
	// carried an explicit `regime` clause and, if so, which cell holds the
	// regime value after the `regime` keyword — Rule.Apply installs a
	// NewRegimeDeclarationConstraint over it. An omitted clause already
	// defaulted Regime to RAND during Build, so HasRegime false means
	// there is nothing left to validate.
	HasRegime  bool
	RegimeCell field.CellID

	Parent util.Option[ID]

	// FirstCell and LastCell bound this region's lexical (cell-index)
	// extent — the range containment constraint checks are expressed
	// over these, not over source byte offsets.
	FirstCell field.CellID
	LastCell  field.CellID

	Allocations []Allocation
	Periscopes  []Periscope
}

// Contains reports whether cell c falls within this region's lexical
// extent.
func (r Region) Contains(c field.CellID) bool {
	return c >= r.FirstCell && c <= r.LastCell
}

// Tree is the region tree derived from a field's collapsed region/regime
// declarations (spec.md §4.6's first paragraph: "Region structure is
// derived from the collapsed syntactic states"). A Builder (build.go)
// assembles one from a Field's collapsed cells; the constraint family below
// consults it read-only.
type Tree struct {
	regions []Region
}

// NewTree wraps a set of regions, indexed by their ID (callers must assign
// IDs 0..n-1 contiguously, matching discovery order).
func NewTree(regions []Region) *Tree {
	return &Tree{regions: regions}
}

// Region returns the region with the given id, or false if out of range.
func (t *Tree) Region(id ID) (Region, bool) {
	if int(id) < 0 || int(id) >= len(t.regions) {
		return Region{}, false
	}

	return t.regions[id], true
}

// Regions returns every region, indexed by ID.
func (t *Tree) Regions() []Region { return t.regions }

// RegionContaining returns the innermost region whose extent contains c, if
// any — the tightest-fitting region wins ties since nested regions narrow
// monotonically.
func (t *Tree) RegionContaining(c field.CellID) (Region, bool) {
	best, found := Region{}, false

	for _, r := range t.regions {
		if !r.Contains(c) {
			continue
		}

		if !found || (r.LastCell-r.FirstCell) < (best.LastCell-best.FirstCell) {
			best, found = r, true
		}
	}

	return best, found
}
