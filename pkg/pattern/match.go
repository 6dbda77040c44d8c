package pattern

import (
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/util/collection/stack"
)

// frame is a checkpoint marker on the backtracking obligation stack
// (spec.md §4.4: "a pattern stack... backtracking over Superposition must
// restore the stack exactly"). The matcher below uses a recursive,
// continuation-passing walk of the pattern tree instead of an explicit
// obligation queue, but still threads every attempt through this stack so
// checkpoint/restore stays centralized in one place rather than scattered
// across each Pattern variant's case.
type frame struct {
	cell  field.CellID
	state field.StateID
}

// matcher holds the state of one attempt to match a root Pattern against a
// fixed run of bound cells. It explores every alternative (rather than
// stopping at the first success) so that the retain sets it accumulates
// are the union over every complete parse still consistent with the
// cells' current live states — a conservative over-approximation of the
// exact per-parse reduction, but a sound one: nothing it retains was ever
// incompatible with at least one full match.
type matcher struct {
	cells   []field.CellID
	view    field.View
	library *Library

	trail    *stack.Stack[frame]
	retain   map[field.CellID]map[field.StateID]bool
	matched  bool
	furthest int
}

func newMatcher(cells []field.CellID, view field.View, library *Library) *matcher {
	return &matcher{
		cells:   cells,
		view:    view,
		library: library,
		trail:   stack.NewStack[frame](),
		retain:  make(map[field.CellID]map[field.StateID]bool),
	}
}

// checkpoint returns the trail length to restore() back to.
func (m *matcher) checkpoint() uint { return m.trail.Len() }

// restore unwinds the trail back to a prior checkpoint, undoing any
// tentative commits made by a failed alternative.
func (m *matcher) restore(to uint) {
	for _, f := range m.trail.UnwindTo(to) {
		if set := m.retain[f.cell]; set != nil {
			delete(set, f.state)
		}
	}
}

func (m *matcher) commit(cell field.CellID, state field.StateID) {
	m.trail.Push(frame{cell: cell, state: state})

	set, ok := m.retain[cell]
	if !ok {
		set = make(map[field.StateID]bool)
		m.retain[cell] = set
	}

	set[state] = true
}

// match attempts to match pat starting at cells[pos], invoking k with the
// position just past whatever pat consumed for each way it can succeed.
// It returns whether at least one invocation of k returned true.
func (m *matcher) match(pat Pattern, pos int, k func(next int) bool) bool {
	switch p := pat.(type) {
	case Token:
		return m.matchToken(p, pos, k)
	case Sequence:
		return m.matchSequence(p, 0, pos, k)
	case Superposition:
		ok := false
		for _, alt := range p.Alternatives {
			cp := m.checkpoint()
			if m.match(alt, pos, k) {
				ok = true
			} else {
				m.restore(cp)
			}
		}
		return ok
	case Repetition:
		return m.matchRepetition(p, pos, k)
	case Optional:
		ok := k(pos)
		cp := m.checkpoint()
		if m.match(p.Sub, pos, k) {
			ok = true
		} else {
			m.restore(cp)
		}
		return ok
	case Reference:
		return m.match(m.library.resolve(p.Name), pos, k)
	default:
		return false
	}
}

func (m *matcher) matchSequence(seq Sequence, i, pos int, k func(next int) bool) bool {
	if i >= len(seq.Parts) {
		return k(pos)
	}

	return m.match(seq.Parts[i], pos, func(next int) bool {
		return m.matchSequence(seq, i+1, next, k)
	})
}

func (m *matcher) matchRepetition(rep Repetition, pos int, k func(next int) bool) bool {
	ok := k(pos) // zero occurrences

	cp := m.checkpoint()
	more := m.match(rep.Sub, pos, func(next int) bool {
		if next <= pos {
			// Refuse a zero-width repetition: spec.md §4.4 only permits
			// Reference cycles that consume a cell per cycle, and the
			// same progress guarantee is required here to terminate.
			return false
		}

		return m.matchRepetition(rep, next, k)
	})

	if more {
		ok = true
	} else {
		m.restore(cp)
	}

	return ok
}

func (m *matcher) matchToken(tok Token, pos int, k func(next int) bool) bool {
	if pos >= len(m.cells) {
		if pos > m.furthest {
			m.furthest = pos
		}

		return false
	}

	cell := m.cells[pos]

	var compatible []field.State

	for _, s := range m.view.LiveStates(cell) {
		if s.TypeTag != tok.TypeTag {
			continue
		}

		if tok.Literal != "" && s.Label != tok.Literal {
			continue
		}

		compatible = append(compatible, s)
	}

	if len(compatible) == 0 {
		if pos > m.furthest {
			m.furthest = pos
		}

		return false
	}

	if !k(pos + 1) {
		return false
	}

	for _, s := range compatible {
		m.commit(cell, s.ID)
	}

	m.matched = true

	return true
}

// run matches root against the full span of bound cells, requiring every
// cell to be consumed (spec.md §4.4: "succeeds iff the token sequence
// matches the pattern language"). It returns the accumulated retain sets
// and, on failure, the index of the cell where matching made the least
// progress — a reasonable contradiction site for diagnostics.
func (m *matcher) run(root Pattern) (ok bool, retain map[field.CellID]map[field.StateID]bool, failCell field.CellID) {
	ok = m.match(root, 0, func(next int) bool { return next == len(m.cells) })

	if !ok {
		idx := m.furthest
		if idx >= len(m.cells) {
			idx = len(m.cells) - 1
		}

		if idx < 0 {
			idx = 0
		}

		if len(m.cells) > 0 {
			failCell = m.cells[idx]
		}

		return false, nil, failCell
	}

	return true, m.retain, 0
}
