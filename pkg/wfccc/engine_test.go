package wfccc

import (
	"testing"

	"github.com/iregaddr/braggi/pkg/constraint"
	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/source"
)

func newEngineField() *field.Field {
	return field.NewField(0, diagnostic.NewReporter("wfccc-test"))
}

func es(id field.StateID, tag, label string, weight uint64) field.State {
	return field.State{ID: id, TypeTag: tag, Label: label, Weight: weight}
}

func TestEngine_Run_CollapsesSingleStateCellsImmediately(t *testing.T) {
	f := newEngineField()
	f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{es(0, "keyword", "fn", 1)})
	f.AddCellWithStates(source.Position{Line: 1, Column: 4}, []field.State{es(1, "identifier", "main", 1)})

	e := NewEngine(f)
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.IsFullyCollapsed() {
		t.Fatalf("expected field fully collapsed")
	}
}

func TestEngine_Run_PicksHigherWeightAlternative(t *testing.T) {
	f := newEngineField()
	// Ambiguous cell with two candidate readings; the higher-weight one
	// must win deterministically (spec.md §8 E6).
	f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{
		es(0, "identifier", "x", 1),
		es(1, "keyword", "x", 10),
	})

	e := NewEngine(f)
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := f.Cell(0).CollapsedState()
	if got.ID != 1 {
		t.Fatalf("expected the weight-10 state to win, got state %d (weight %d)", got.ID, got.Weight)
	}
}

func TestEngine_Run_ContradictionOnAdjacencyMismatch(t *testing.T) {
	f := newEngineField()
	left := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{es(0, "keyword", "fn", 1)})
	right := f.AddCellWithStates(source.Position{Line: 1, Column: 4}, []field.State{es(1, "punctuation", ";", 1)})

	admits := func(l, r field.State) bool { return r.TypeTag == "identifier" }
	c := constraint.NewAdjacency("fn-needs-name", field.SyntaxKind, left, right, admits)
	f.AddConstraint(c)

	e := NewEngine(f)
	if err := e.Run(); err == nil {
		t.Fatalf("expected a contradiction")
	}

	if !f.HasContradiction() {
		t.Fatalf("expected field to record the contradiction")
	}

	if len(f.Reporter().All()) == 0 {
		t.Fatalf("expected the engine to report a diagnostic")
	}

	got := f.Reporter().All()[0]
	if got.Category != diagnostic.Syntax {
		t.Fatalf("expected Syntax category from the Adjacency constraint's kind, got %s", got.Category)
	}
}

func TestEngine_Run_Deterministic(t *testing.T) {
	build := func() *field.Field {
		f := newEngineField()
		f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{
			es(0, "identifier", "x", 3),
			es(1, "keyword", "x", 3),
			es(2, "operator", "x", 3),
		})
		return f
	}

	f1 := build()
	f2 := build()

	if err := NewEngine(f1).Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewEngine(f2).Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f1.Cell(0).CollapsedState().ID != f2.Cell(0).CollapsedState().ID {
		t.Fatalf("expected identical seeds/source to collapse identically across runs")
	}
}

func TestEngine_OnTick_AbortsLoop(t *testing.T) {
	f := newEngineField()
	f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{
		es(0, "identifier", "a", 1), es(1, "keyword", "a", 1),
	})
	f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []field.State{
		es(2, "identifier", "b", 1), es(3, "keyword", "b", 1),
	})

	e := NewEngine(f)

	ticks := 0
	e.OnTick(func(*field.Field) error {
		ticks++
		if ticks > 1 {
			return errAbort
		}
		return nil
	})

	if err := e.Run(); err == nil {
		t.Fatalf("expected tick callback to abort the loop")
	}

	if f.IsFullyCollapsed() {
		t.Fatalf("expected the loop to abort before full collapse")
	}
}

var errAbort = abortError{}

type abortError struct{}

func (abortError) Error() string { return "budget exceeded" }
