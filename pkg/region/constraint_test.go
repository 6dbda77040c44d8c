package region

import (
	"testing"

	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/util"
)

func TestNewRegimeDeclarationConstraint_AcceptsRecognizedRegime(t *testing.T) {
	f := newRegionField()
	addToken(f, kw(1, "region"))
	addToken(f, ident(1, "R"))
	addToken(f, kw(1, "regime"))
	addToken(f, kw(1, "SEQ"))
	addToken(f, punct(1, "{"))
	addToken(f, punct(2, "}"))
	collapseAll(f)

	tree := Build(f)
	r := tree.Regions()[0]

	if !r.HasRegime {
		t.Fatalf("expected HasRegime, got %+v", r)
	}

	c := NewRegimeDeclarationConstraint(r.FirstCell, r.RegimeCell)

	res := c.Validate(f.View())
	if res.Kind == field.ContradictionResult {
		t.Fatalf("expected a recognized regime keyword to validate, got contradiction: %s", res.Message)
	}
}

func TestNewRegimeDeclarationConstraint_ContradictsOnUnrecognizedRegime(t *testing.T) {
	f := newRegionField()
	addToken(f, kw(1, "region"))
	addToken(f, ident(1, "R"))
	addToken(f, kw(1, "regime"))
	addToken(f, kw(1, "BOGUS"))
	addToken(f, punct(1, "{"))
	addToken(f, punct(2, "}"))
	collapseAll(f)

	tree := Build(f)
	r := tree.Regions()[0]

	c := NewRegimeDeclarationConstraint(r.FirstCell, r.RegimeCell)

	res := c.Validate(f.View())
	if res.Kind != field.ContradictionResult {
		t.Fatalf("expected contradiction for an unrecognized regime keyword, got %+v", res)
	}
}

func TestNewContainmentConstraint_ContradictsWhenChildEscapesParent(t *testing.T) {
	tree := NewTree([]Region{
		{ID: 0, Name: "Outer", FirstCell: 0, LastCell: 5},
		{ID: 1, Name: "Inner", FirstCell: 2, LastCell: 10, Parent: util.Some(ID(0))},
	})

	c := NewContainmentConstraint(tree, 1)

	res := c.Validate(nil)
	if res.Kind != field.ContradictionResult {
		t.Fatalf("expected contradiction for a child escaping its parent's extent, got %+v", res)
	}
}

func TestNewLifetimeConstraint_ContradictsWhenAllocationEscapesRegion(t *testing.T) {
	tree := NewTree([]Region{
		{
			ID: 0, Name: "R", FirstCell: 0, LastCell: 5,
			Allocations: []Allocation{{Cell: 2, LifetimeEnd: 9}},
		},
	})

	c := NewLifetimeConstraint(tree, 0, 0)

	res := c.Validate(nil)
	if res.Kind != field.ContradictionResult {
		t.Fatalf("expected contradiction for an allocation escaping its region's extent, got %+v", res)
	}
}
