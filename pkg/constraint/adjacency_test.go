package constraint

import (
	"testing"

	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/source"
)

func newAdjField() *field.Field {
	return field.NewField(0, diagnostic.NewReporter("adjacency-test"))
}

func st(id field.StateID, tag, label string) field.State {
	return field.State{ID: id, TypeTag: tag, Label: label, Weight: 1}
}

func TestAdjacency_KeepsOnlyAdmissiblePairs(t *testing.T) {
	f := newAdjField()
	left := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{
		st(0, "keyword", "region"), st(1, "keyword", "fn"),
	})
	right := f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []field.State{
		st(2, "identifier", ""),
	})

	admits := func(l, r field.State) bool {
		return l.Label == "region" && r.TypeTag == "identifier"
	}

	c := NewAdjacency("region-name", field.SemanticKind, left, right, admits)
	id := f.AddConstraint(c)

	res := c.Validate(f.View())
	if res.Kind != field.Reduced {
		t.Fatalf("expected a reduce, got %v", res.Kind)
	}

	changed, err := f.ApplyResult(id, res)
	if err != nil {
		t.Fatalf("unexpected contradiction: %v", err)
	}

	if len(changed) != 1 || changed[0] != left {
		t.Fatalf("expected only the left cell to narrow, got %v", changed)
	}

	if f.Cell(left).Entropy() != 1 {
		t.Fatalf("expected left cell narrowed to the admissible 'region' state, entropy=%d", f.Cell(left).Entropy())
	}
}

func TestAdjacency_ContradictsWhenNoPairAdmissible(t *testing.T) {
	f := newAdjField()
	left := f.AddCellWithStates(source.Position{Line: 1, Column: 1}, []field.State{st(0, "keyword", "fn")})
	right := f.AddCellWithStates(source.Position{Line: 1, Column: 2}, []field.State{st(1, "identifier", "")})

	admits := func(l, r field.State) bool { return l.Label == "region" }

	c := NewAdjacency("region-name", field.SemanticKind, left, right, admits)

	res := c.Validate(f.View())
	if res.Kind != field.ContradictionResult {
		t.Fatalf("expected contradiction, got %v", res.Kind)
	}
}
