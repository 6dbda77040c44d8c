package field

import "fmt"

// ContradictionError is returned when an operation would leave a Cell with
// no live states — either collapse() targeting a state that is no longer
// live, or a Constraint's Reduce eliminating the last live state of one of
// its bound cells (spec.md §3, §4.2).
type ContradictionError struct {
	Cell  CellID
	State StateID
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("cell %d: no live states remain (last rejected state %d)", e.Cell, e.State)
}

func errContradiction(cell CellID, state StateID) error {
	return &ContradictionError{Cell: cell, State: state}
}
