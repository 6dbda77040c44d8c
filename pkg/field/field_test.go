package field

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/source"
)

func newTestField() *Field {
	return NewField(0, diagnostic.NewReporter("field-test"))
}

func stateAt(id StateID, weight uint64) State {
	return State{ID: id, TypeTag: "test", Label: "s", Weight: weight}
}

func TestField_AddCellWithStates_Entropy(t *testing.T) {
	f := newTestField()

	c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{
		stateAt(0, 1), stateAt(1, 1), stateAt(2, 1),
	})

	cell := f.Cell(c)
	if cell.Entropy() != 3 {
		t.Fatalf("expected entropy 3, got %d", cell.Entropy())
	}

	if cell.IsCollapsed() {
		t.Fatalf("cell with 3 live states must not be collapsed")
	}
}

func TestField_AddState_RejectsAfterCollapse(t *testing.T) {
	f := newTestField()
	c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1)})

	if !f.Cell(c).IsCollapsed() {
		t.Fatalf("a cell seeded with exactly one live state is collapsed by definition")
	}

	if err := f.AddState(c, stateAt(1, 1)); err == nil {
		t.Fatalf("expected AddState to reject a state pushed onto an already-collapsed cell")
	}
}

func TestField_LowestEntropyCell_TieBreaksByID(t *testing.T) {
	f := newTestField()

	a := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1), stateAt(1, 1)})
	_ = f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []State{stateAt(2, 1), stateAt(3, 1)})

	got, ok := f.LowestEntropyCell()
	if !ok {
		t.Fatalf("expected a lowest-entropy cell")
	}

	if got != a {
		t.Fatalf("expected tie-break to prefer lowest cell id %d, got %d", a, got)
	}
}

func TestField_LowestEntropyCell_SkipsCollapsed(t *testing.T) {
	f := newTestField()

	collapsed := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1)})
	open := f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []State{stateAt(1, 1), stateAt(2, 1)})

	got, ok := f.LowestEntropyCell()
	if !ok || got != open {
		t.Fatalf("expected the open cell %d, got %d (ok=%v); collapsed cell was %d", open, got, ok, collapsed)
	}
}

func TestField_LowestEntropyCell_NoneWhenFullyCollapsed(t *testing.T) {
	f := newTestField()
	f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1)})

	if _, ok := f.LowestEntropyCell(); ok {
		t.Fatalf("expected no lowest-entropy cell once every cell is collapsed")
	}

	if !f.IsFullyCollapsed() {
		t.Fatalf("expected field to report fully collapsed")
	}
}

func TestField_Collapse_ContradictionOnDeadState(t *testing.T) {
	f := newTestField()
	c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1), stateAt(1, 1)})

	// Eliminate state 0 via a Reduce first, then try to collapse onto it.
	if _, err := f.ApplyResult(0, ReduceTo(map[CellID]map[StateID]bool{c: {1: true}})); err != nil {
		t.Fatalf("unexpected error reducing: %v", err)
	}

	if err := f.Collapse(c, 0); err == nil {
		t.Fatalf("expected collapsing onto an eliminated state to contradict")
	}

	if !f.HasContradiction() {
		t.Fatalf("expected field to record the contradiction")
	}

	cell, ok := f.ContradictionCell()
	if !ok || cell != c {
		t.Fatalf("expected contradiction cell %d, got %d (ok=%v)", c, cell, ok)
	}
}

func TestField_ApplyResult_ContradictionWhenCellEmptied(t *testing.T) {
	f := newTestField()
	c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1)})

	_, err := f.ApplyResult(0, ReduceTo(map[CellID]map[StateID]bool{c: {}}))
	if err == nil {
		t.Fatalf("expected emptying a cell's live states to contradict")
	}

	if !f.HasContradiction() {
		t.Fatalf("expected field contradiction flag set")
	}
}

// TestField_Monotonicity_Property checks spec.md §8's monotonicity
// invariant: once a state is eliminated from a cell, no sequence of
// further Reduce applications ever makes it live again.
func TestField_Monotonicity_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(t, "numStates")

		states := make([]State, n)
		for i := range states {
			states[i] = stateAt(StateID(i), 1)
		}

		f := newTestField()
		c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, states)

		eliminated := make(map[StateID]bool)

		steps := rapid.IntRange(1, 8).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if f.Cell(c).IsEmpty() {
				break
			}

			live := f.Cell(c).LiveStateIDs()
			if len(live) <= 1 {
				break
			}

			drop := live[rapid.IntRange(0, len(live)-1).Draw(t, "dropIdx")]
			keep := make(map[StateID]bool)

			for _, id := range live {
				if id != drop {
					keep[id] = true
				}
			}

			eliminated[drop] = true

			if _, err := f.ApplyResult(0, ReduceTo(map[CellID]map[StateID]bool{c: keep})); err != nil {
				break
			}

			for id := range eliminated {
				for _, l := range f.Cell(c).LiveStateIDs() {
					if l == id {
						t.Fatalf("state %d was eliminated but reappeared as live", id)
					}
				}
			}
		}
	})
}

// TestField_Determinism_Property checks that LowestEntropyCell is a pure
// function of the field's current state: calling it twice in a row, with
// no mutation between, always returns the same answer.
func TestField_Determinism_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numCells := rapid.IntRange(1, 8).Draw(t, "numCells")

		f := newTestField()
		for i := 0; i < numCells; i++ {
			n := rapid.IntRange(1, 4).Draw(t, "numStates")
			states := make([]State, n)
			for j := range states {
				states[j] = stateAt(StateID(i*10+j), 1)
			}
			f.AddCellWithStates(source.Position{Line: 1, Column: i + 1}, states)
		}

		first, firstOK := f.LowestEntropyCell()
		second, secondOK := f.LowestEntropyCell()

		if first != second || firstOK != secondOK {
			t.Fatalf("LowestEntropyCell is not deterministic: (%d,%v) vs (%d,%v)", first, firstOK, second, secondOK)
		}
	})
}

// TestField_Idempotence_Property checks that applying the same Reduce
// twice in a row produces no further change the second time.
func TestField_Idempotence_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(t, "numStates")

		states := make([]State, n)
		for i := range states {
			states[i] = stateAt(StateID(i), 1)
		}

		f := newTestField()
		c := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, states)

		keepN := rapid.IntRange(1, n).Draw(t, "keepN")
		keep := make(map[StateID]bool)
		for i := 0; i < keepN; i++ {
			keep[StateID(i)] = true
		}

		result := ReduceTo(map[CellID]map[StateID]bool{c: keep})

		if _, err := f.ApplyResult(0, result); err != nil {
			t.Fatalf("unexpected contradiction on first apply: %v", err)
		}

		before := f.Cell(c).LiveStateIDs()

		changed, err := f.ApplyResult(0, result)
		if err != nil {
			t.Fatalf("unexpected contradiction on repeat apply: %v", err)
		}

		if len(changed) != 0 {
			t.Fatalf("repeating an already-applied Reduce should change nothing, changed=%v", changed)
		}

		after := f.Cell(c).LiveStateIDs()
		if len(before) != len(after) {
			t.Fatalf("live state set changed on idempotent re-apply: before=%v after=%v", before, after)
		}
	})
}

func TestField_AddConstraint_IndexesTouchingCells(t *testing.T) {
	f := newTestField()
	a := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []State{stateAt(0, 1), stateAt(1, 1)})
	b := f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []State{stateAt(2, 1), stateAt(3, 1)})

	id := f.AddConstraint(&fakeConstraint{name: "c1", kind: CustomKind, cells: []CellID{a, b}})

	if got := f.Cell(a).Touching(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected cell %d to be touched by constraint %d, got %v", a, id, got)
	}

	if got := f.Cell(b).Touching(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected cell %d to be touched by constraint %d, got %v", b, id, got)
	}
}

type fakeConstraint struct {
	name  string
	kind  Kind
	cells []CellID
}

func (c *fakeConstraint) Name() string      { return c.name }
func (c *fakeConstraint) Kind() Kind        { return c.kind }
func (c *fakeConstraint) Cells() []CellID   { return c.cells }
func (c *fakeConstraint) Validate(View) Result { return OK() }
