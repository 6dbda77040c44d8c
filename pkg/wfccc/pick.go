package wfccc

import "github.com/iregaddr/braggi/pkg/field"

// weightedPick chooses which of a cell's live states to collapse onto,
// per spec.md §9's Open Question #3 resolution: deterministic arg-max of
// weight, ties broken by lowest state id whatever order states arrive in.
func weightedPick(states []field.State) field.StateID {
	if len(states) == 0 {
		panic("weightedPick called with no live states")
	}

	best := states[0]

	for _, s := range states[1:] {
		if s.Weight > best.Weight || (s.Weight == best.Weight && s.ID < best.ID) {
			best = s
		}
	}

	return best.ID
}
