package wfccc

import "github.com/iregaddr/braggi/pkg/field"

import "testing"

func TestWeightedPick_PicksMaxWeight(t *testing.T) {
	states := []field.State{
		{ID: 0, Weight: 1},
		{ID: 1, Weight: 5},
		{ID: 2, Weight: 2},
	}

	if got := weightedPick(states); got != 1 {
		t.Fatalf("expected the state with max weight (id 1), got %d", got)
	}
}

func TestWeightedPick_BreaksTiesByLowestID(t *testing.T) {
	states := []field.State{
		{ID: 3, Weight: 4},
		{ID: 1, Weight: 4},
		{ID: 2, Weight: 4},
	}

	if got := weightedPick(states); got != 1 {
		t.Fatalf("expected the lowest-id tied state (id 1), got %d", got)
	}
}
