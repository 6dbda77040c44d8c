package field

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/source"
)

// Reduction records one successful Constraint application that actually
// narrowed a Cell, for the best-effort contradiction explanation: when the
// field later contradicts, the engine can point at the last couple of
// reductions that touched the emptied cell, even though no single
// constraint "caused" the contradiction in isolation.
type Reduction struct {
	Constraint ConstraintID
	Cell       CellID
}

// Field is the entropy field: an ordered sequence of Cells plus the
// Constraints and Rules bound over them (spec.md §3, §4.2). Field owns all
// mutation; Constraint validators only ever see it through a View.
type Field struct {
	sourceID source.FileID
	reporter *diagnostic.Reporter

	cells       []*Cell
	constraints []Constraint
	rules       []Rule

	contradiction           bool
	contradictionCell       CellID
	contradictionConstraint ConstraintID
	contradictionMessage    string
	contradictionDetail     string

	// history is a small ring buffer of the last reductions applied,
	// newest last — used for best-effort contradiction explanations, not
	// for correctness.
	history []Reduction
}

// NewField constructs an empty Field over the given source, reporting
// diagnostics through reporter.
func NewField(sourceID source.FileID, reporter *diagnostic.Reporter) *Field {
	return &Field{
		sourceID: sourceID,
		reporter: reporter,
	}
}

// SourceID returns the id of the source file this field was built from.
func (f *Field) SourceID() source.FileID { return f.sourceID }

// Reporter returns the diagnostic sink this field reports through.
func (f *Field) Reporter() *diagnostic.Reporter { return f.reporter }

// Cells returns every cell, in creation (== tokenization) order.
func (f *Field) Cells() []*Cell { return f.cells }

// Cell returns the cell with the given id, or nil if out of range.
func (f *Field) Cell(id CellID) *Cell {
	if int(id) < 0 || int(id) >= len(f.cells) {
		return nil
	}

	return f.cells[id]
}

// NumCells returns the number of cells in the field.
func (f *Field) NumCells() int { return len(f.cells) }

// AddCell appends a new, stateless cell at the given position and returns
// its id. Use AddState to seed it, or AddCellWithStates to do both at once.
func (f *Field) AddCell(pos source.Position) CellID {
	id := CellID(len(f.cells))
	f.cells = append(f.cells, newCell(id, pos))

	return id
}

// AddCellWithStates creates a cell and seeds it with every given state in
// one step. This is the bulk seeding path used by the field initializer
// (spec.md §4.5's "one Cell per non-trivia Token" step): seeding a cell's
// states one at a time via AddState would transiently make it look
// collapsed the moment exactly one state has been pushed, which AddState
// rejects by design (see AddState's doc comment).
func (f *Field) AddCellWithStates(pos source.Position, states []State) CellID {
	id := f.AddCell(pos)
	c := f.cells[id]

	for _, s := range states {
		c.addState(s)
	}

	return id
}

// AddState pushes a single additional candidate state onto an existing
// cell. Per spec.md §4.2 this fails if the cell is already collapsed — a
// legitimate guard once propagation has begun (a Rule discovering it wants
// to offer a cell a new alternative after the field has already settled on
// one would silently reopen a decision other constraints already reasoned
// about). Bulk initial seeding should use AddCellWithStates instead.
func (f *Field) AddState(cellID CellID, s State) error {
	c := f.Cell(cellID)
	if c == nil {
		return fmt.Errorf("add state: no such cell %d", cellID)
	}

	if c.IsCollapsed() {
		return fmt.Errorf("add state: cell %d is already collapsed", cellID)
	}

	c.addState(s)

	return nil
}

// AddConstraint registers a constraint, cross-indexing it into every cell
// it touches so Cell.Touching reflects registration order.
func (f *Field) AddConstraint(c Constraint) ConstraintID {
	id := ConstraintID(len(f.constraints))
	f.constraints = append(f.constraints, c)

	for _, cellID := range c.Cells() {
		if cell := f.Cell(cellID); cell != nil {
			cell.touches(id)
		}
	}

	return id
}

// Constraint returns the constraint registered under id.
func (f *Field) Constraint(id ConstraintID) Constraint {
	if int(id) < 0 || int(id) >= len(f.constraints) {
		return nil
	}

	return f.constraints[id]
}

// Constraints returns every registered constraint, in registration order.
func (f *Field) Constraints() []Constraint { return f.constraints }

// AddRule schedules a one-shot constraint factory, to be run by
// InstallRules.
func (f *Field) AddRule(r Rule) {
	f.rules = append(f.rules, r)
}

// InstallRules runs every scheduled Rule once, in scheduling order,
// registering whatever Constraints each one emits.
func (f *Field) InstallRules() {
	for _, r := range f.rules {
		for _, c := range r.Apply(f) {
			f.AddConstraint(c)
		}
	}

	f.rules = nil
}

// IsFullyCollapsed reports whether every cell has exactly one live state.
func (f *Field) IsFullyCollapsed() bool {
	for _, c := range f.cells {
		if !c.IsCollapsed() {
			return false
		}
	}

	return true
}

// HasContradiction reports whether the field has ever reached an empty
// cell.
func (f *Field) HasContradiction() bool { return f.contradiction }

// ContradictionCell returns the cell that emptied, if HasContradiction.
func (f *Field) ContradictionCell() (CellID, bool) {
	return f.contradictionCell, f.contradiction
}

// LowestEntropyCell returns the uncollapsed cell with the fewest live
// states, ties broken by lowest cell id (spec.md §4.4). Returns false iff
// every cell is collapsed.
func (f *Field) LowestEntropyCell() (CellID, bool) {
	best := CellID(0)
	bestEntropy := uint(0)
	found := false

	for _, c := range f.cells {
		if c.IsCollapsed() {
			continue
		}

		if !found || c.Entropy() < bestEntropy {
			best = c.ID()
			bestEntropy = c.Entropy()
			found = true
		}
	}

	return best, found
}

// Collapse narrows a cell down to exactly the given state. On success it
// records a reduction for explanation purposes; on failure (the state was
// not live) it marks the field contradicted and returns a
// *ContradictionError.
func (f *Field) Collapse(cellID CellID, stateID StateID) error {
	c := f.Cell(cellID)
	if c == nil {
		return fmt.Errorf("collapse: no such cell %d", cellID)
	}

	if err := c.collapse(stateID); err != nil {
		f.markContradiction(cellID, invalidConstraintID, "cannot collapse: state is no longer live", "")
		return err
	}

	f.recordReduction(invalidConstraintID, cellID)

	return nil
}

// invalidConstraintID marks a reduction as engine-driven (a direct
// Collapse call) rather than caused by a specific constraint's Reduce.
const invalidConstraintID = ConstraintID(^uint32(0))

// ApplyResult applies a Constraint's Result to the field: a Satisfiable
// Result is a no-op; a Reduced Result retains only the given states on
// each named cell, marking the field contradicted if that empties one; a
// ContradictionResult marks the field contradicted directly. It returns
// the set of cells that were actually narrowed, for the propagator's
// worklist.
func (f *Field) ApplyResult(constraintID ConstraintID, res Result) (changed []CellID, err error) {
	switch res.Kind {
	case Satisfiable:
		return nil, nil

	case ContradictionResult:
		f.markContradiction(res.Cell, constraintID, res.Message, res.Detail)
		return nil, &ContradictionError{Cell: res.Cell}

	case Reduced:
		for cellID, keep := range res.Retain {
			c := f.Cell(cellID)
			if c == nil {
				continue
			}

			if c.retain(keep) {
				changed = append(changed, cellID)
				f.recordReduction(constraintID, cellID)

				if c.IsEmpty() {
					f.markContradiction(cellID, constraintID, "constraint reduction eliminated the last live state", "")
					return changed, &ContradictionError{Cell: cellID}
				}
			}
		}

		return changed, nil
	}

	return nil, fmt.Errorf("apply result: unknown result kind %d", res.Kind)
}

func (f *Field) markContradiction(cell CellID, constraintID ConstraintID, message, detail string) {
	if f.contradiction {
		return
	}

	f.contradiction = true
	f.contradictionCell = cell
	f.contradictionConstraint = constraintID
	f.contradictionMessage = message
	f.contradictionDetail = detail
}

// ContradictionMessage returns the message supplied by whatever caused the
// contradiction — a Constraint's Contradiction Result, or a generic
// description for a Collapse onto a dead state. Empty until
// HasContradiction is true.
func (f *Field) ContradictionMessage() string { return f.contradictionMessage }

// ContradictionDetail is the accompanying elaboration, if any (e.g. a
// Region constraint's compatibility suggestion).
func (f *Field) ContradictionDetail() string { return f.contradictionDetail }

// ContradictionConstraint returns the constraint whose Reduce caused the
// contradiction, if any — false for a direct Collapse onto a dead state.
func (f *Field) ContradictionConstraint() (ConstraintID, bool) {
	return f.contradictionConstraint, f.contradiction && f.contradictionConstraint != invalidConstraintID
}

func (f *Field) recordReduction(constraintID ConstraintID, cell CellID) {
	f.history = append(f.history, Reduction{Constraint: constraintID, Cell: cell})
	if len(f.history) > 2 {
		f.history = f.history[len(f.history)-2:]
	}
}

// History returns the last (at most two) reductions applied, oldest
// first — used by the engine to build a best-effort contradiction
// explanation.
func (f *Field) History() []Reduction {
	return f.history
}

// View returns a read-only View over this field, for passing to a
// Constraint's Validate.
func (f *Field) View() View {
	return fieldView{f: f}
}

type fieldView struct{ f *Field }

func (v fieldView) LiveStates(cell CellID) []State {
	c := v.f.Cell(cell)
	if c == nil {
		return nil
	}

	return c.LiveStates()
}

func (v fieldView) Position(cell CellID) source.Position {
	c := v.f.Cell(cell)
	if c == nil {
		return source.Position{}
	}

	return c.Position()
}

func (v fieldView) NumCells() int { return v.f.NumCells() }
