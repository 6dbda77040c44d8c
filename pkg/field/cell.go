package field

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/iregaddr/braggi/pkg/source"
)

// CellID uniquely identifies a Cell within a Field. Cells are created,
// iterated and emitted in tokenization order (spec.md §4.2's ordering
// guarantee) — CellID 0 is always the first non-trivia token, ascending
// from there.
type CellID uint32

// ConstraintID uniquely identifies a Constraint registered with a Field.
type ConstraintID uint32

// Cell is a container of candidate States at one source position (spec.md
// §3). Its live-state set is tracked as a bitset.BitSet over the index of
// each State within Cell.states (not over StateID, which is global to the
// Field) — Count() on that bitset is the Cell's entropy.
type Cell struct {
	id       CellID
	position source.Position
	states   []State
	live     *bitset.BitSet
	index    map[StateID]int
	// touching lists the constraints bound to this cell, in the order they
	// were registered — spec.md §5 requires constraints to fire in this
	// order within one propagation step.
	touching []ConstraintID
}

func newCell(id CellID, pos source.Position) *Cell {
	return &Cell{
		id:       id,
		position: pos,
		live:     bitset.New(0),
		index:    make(map[StateID]int),
	}
}

// ID returns this cell's stable identifier.
func (c *Cell) ID() CellID { return c.id }

// Position returns the source position this cell covers.
func (c *Cell) Position() source.Position { return c.position }

// addState appends a new candidate state and marks it live (weight == 0 is
// permitted at construction — a state seeded dead is simply pre-eliminated,
// though callers should generally seed with weight > 0).
func (c *Cell) addState(s State) {
	idx := len(c.states)
	c.states = append(c.states, s)
	c.index[s.ID] = idx

	if s.Weight > 0 {
		c.live.Set(uint(idx))
	}
}

// touches registers a constraint as bound to this cell, appending to the
// touching-list so constraint evaluation order matches registration order.
func (c *Cell) touches(id ConstraintID) {
	c.touching = append(c.touching, id)
}

// Touching returns the constraints bound to this cell, in registration
// order.
func (c *Cell) Touching() []ConstraintID {
	return c.touching
}

// States returns every state ever added to this cell, including eliminated
// ones (which keep their Weight; LiveStates tells them apart) — useful for
// diagnostics explaining why a cell became empty.
func (c *Cell) States() []State {
	return c.states
}

// LiveStates returns the subset of States still live, in ascending StateID
// order (which is also ascending slice-index order, since states are only
// ever appended).
func (c *Cell) LiveStates() []State {
	out := make([]State, 0, c.live.Count())

	for i, e := c.live.NextSet(0); e; i, e = c.live.NextSet(i + 1) {
		out = append(out, c.states[i])
	}

	return out
}

// LiveStateIDs is LiveStates without the surrounding State structs.
func (c *Cell) LiveStateIDs() []StateID {
	ids := make([]StateID, 0, c.live.Count())

	for i, e := c.live.NextSet(0); e; i, e = c.live.NextSet(i + 1) {
		ids = append(ids, c.states[i].ID)
	}

	return ids
}

// Entropy is the number of live states, per the Open Question resolution in
// spec.md §9.2 (count, not log2(count)).
func (c *Cell) Entropy() uint {
	return c.live.Count()
}

// IsCollapsed reports whether exactly one state remains live.
func (c *Cell) IsCollapsed() bool {
	return c.live.Count() == 1
}

// IsEmpty reports whether every state has been eliminated — the
// contradiction condition from spec.md §3.
func (c *Cell) IsEmpty() bool {
	return c.live.Count() == 0
}

// CollapsedState returns the single live state once IsCollapsed is true.
// Panics otherwise — callers must check IsCollapsed first, mirroring the
// Output Adapter's contract in spec.md §4.7.
func (c *Cell) CollapsedState() State {
	i, ok := c.live.NextSet(0)
	if !ok || c.live.Count() != 1 {
		panic("CollapsedState called on a non-collapsed cell")
	}

	return c.states[i]
}

// retain eliminates every live state whose id is not in keep, returning
// whether anything actually changed (the monotonicity contract: a
// Constraint's Reduce never re-introduces an eliminated state, so retain is
// a pure narrowing operation).
func (c *Cell) retain(keep map[StateID]bool) (changed bool) {
	for i, e := c.live.NextSet(0); e; i, e = c.live.NextSet(i + 1) {
		if !keep[c.states[i].ID] {
			c.live.Clear(i)
			changed = true
		}
	}

	return changed
}

// eliminate clears a single state by id, returning whether it was
// previously live.
func (c *Cell) eliminate(id StateID) bool {
	idx, ok := c.index[id]
	if !ok || !c.live.Test(uint(idx)) {
		return false
	}

	c.live.Clear(uint(idx))

	return true
}

// collapse retains only the given state, returning an error if that state
// is not currently live (the Contradiction case from spec.md §4.2).
func (c *Cell) collapse(id StateID) error {
	idx, ok := c.index[id]
	if !ok || !c.live.Test(uint(idx)) {
		return errContradiction(c.id, id)
	}

	// Clear every other bit directly, rather than going through retain's
	// map-membership check, since we know exactly which single bit must
	// survive.
	for i, e := c.live.NextSet(0); e; i, e = c.live.NextSet(i + 1) {
		if i != uint(idx) {
			c.live.Clear(i)
		}
	}

	return nil
}
