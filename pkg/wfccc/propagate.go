// Package wfccc implements the Propagator / WFCCC Engine (spec.md §4.5):
// observation (lowest-entropy cell selection), collapse, constraint
// re-evaluation to fixpoint, and contradiction detection, driving a
// field.Field to completion.
package wfccc

import "github.com/iregaddr/braggi/pkg/field"

// cellQueue is a small FIFO worklist of cell ids with at-most-once
// membership, used by PropagateFrom's fixpoint loop (spec.md §4.5). No
// dependency in the example pack offers a generic FIFO queue type — this
// is plain domain orchestration state, not a reusable collection, so it
// stays a dozen lines of stdlib slice rather than reaching for a library.
type cellQueue struct {
	items  []field.CellID
	queued map[field.CellID]bool
}

func newCellQueue() *cellQueue {
	return &cellQueue{queued: make(map[field.CellID]bool)}
}

func (q *cellQueue) push(id field.CellID) {
	if q.queued[id] {
		return
	}

	q.queued[id] = true
	q.items = append(q.items, id)
}

func (q *cellQueue) pop() (field.CellID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}

	id := q.items[0]
	q.items = q.items[1:]
	delete(q.queued, id)

	return id, true
}

// Propagate drains a worklist seeded with the given cells, applying every
// constraint touching each popped cell and enqueuing any cell its
// reduction narrowed, until the queue empties (fixpoint) or a constraint
// reports Contradiction (spec.md §4.5). It returns the total number of
// constraint evaluations performed, for the termination bound in spec.md
// §8 invariant 3.
func Propagate(f *field.Field, seed []field.CellID) (evaluations int, err error) {
	queue := newCellQueue()
	for _, id := range seed {
		queue.push(id)
	}

	for {
		cellID, ok := queue.pop()
		if !ok {
			return evaluations, nil
		}

		cell := f.Cell(cellID)
		if cell == nil {
			continue
		}

		// Touching is a snapshot at the time of the pop; constraints
		// registered after the field's Rules installed never change at
		// runtime, so iterating it directly (rather than copying) is safe.
		for _, constraintID := range cell.Touching() {
			c := f.Constraint(constraintID)
			if c == nil {
				continue
			}

			evaluations++

			res := c.Validate(f.View())

			changed, applyErr := f.ApplyResult(constraintID, res)
			for _, changedCell := range changed {
				queue.push(changedCell)
			}

			if applyErr != nil {
				return evaluations, applyErr
			}
		}
	}
}

// PropagateInitial runs Propagate seeded with every cell in the field, for
// the field-initialization step in spec.md §4.5's main loop.
func PropagateInitial(f *field.Field) (int, error) {
	seed := make([]field.CellID, f.NumCells())
	for i := range seed {
		seed[i] = field.CellID(i)
	}

	return Propagate(f, seed)
}

// PropagateFrom runs Propagate seeded with a single cell — the one just
// collapsed by the main loop.
func PropagateFrom(f *field.Field, cellID field.CellID) (int, error) {
	return Propagate(f, []field.CellID{cellID})
}
