package region

import "github.com/iregaddr/braggi/pkg/field"

// Rule derives the region tree from the field's already-collapsed
// region/regime/periscope cells and emits the full constraint family over
// it (spec.md §4.6): one containmentConstraint per region with a parent,
// one NewRegimeDeclarationConstraint per region with an explicit regime
// clause, one periscopeCompatConstraint per periscope edge, and one
// lifetimeConstraint per allocation.
//
// Unlike the Syntax/Semantic constraints installed before propagation
// begins, this Rule only makes sense to run after the field has reached a
// syntactic fixed point, since Build reads collapsed states. pkg/compile's
// File installs it as a second pass once the main loop has settled the
// lexical skeleton.
type Rule struct{}

// NewRule constructs the Region & Regime Checker rule.
func NewRule() *Rule { return &Rule{} }

func (Rule) Name() string { return "region-regime-checker" }

func (Rule) Description() string {
	return "derives the region tree from collapsed region/regime/periscope cells and enforces containment, regime declaration, periscope compatibility and lifetime containment"
}

func (Rule) Apply(f *field.Field) []field.Constraint {
	tree := Build(f)

	var out []field.Constraint

	for _, r := range tree.Regions() {
		if r.Parent.HasValue() {
			out = append(out, NewContainmentConstraint(tree, r.ID))
		}

		if r.HasRegime {
			out = append(out, NewRegimeDeclarationConstraint(r.FirstCell, r.RegimeCell))
		}

		for i := range r.Periscopes {
			out = append(out, NewPeriscopeCompatConstraint(tree, r.ID, i))
		}

		for i := range r.Allocations {
			out = append(out, NewLifetimeConstraint(tree, r.ID, i))
		}
	}

	return out
}
