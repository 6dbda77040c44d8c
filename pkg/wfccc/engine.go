package wfccc

import (
	"github.com/sirupsen/logrus"

	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/source"
)

// TickFunc is an optional hook invoked between observation steps, giving a
// host a place to enforce a budget (spec.md §5: "a host wanting a budget
// installs a tick callback... and raises a Fatal diagnostic to abort").
// Returning a non-nil error aborts the main loop as if a Fatal diagnostic
// had been raised.
type TickFunc func(f *field.Field) error

// Engine drives one Field through the WFCCC main loop to either a fully
// collapsed field or a recorded contradiction (spec.md §4.5).
type Engine struct {
	field *field.Field
	tick  TickFunc
	log   *logrus.Entry
}

// NewEngine constructs an Engine over f.
func NewEngine(f *field.Field) *Engine {
	return &Engine{
		field: f,
		log:   logrus.WithField("component", "wfccc"),
	}
}

// OnTick installs the optional tick callback.
func (e *Engine) OnTick(fn TickFunc) {
	e.tick = fn
}

// Run executes the main loop from spec.md §4.5:
//
//	propagate_initial();
//	while not fully_collapsed() and not has_contradiction():
//	    cell ← lowest_entropy_cell()
//	    state ← weighted_pick(cell.live_states)
//	    collapse(cell.id, state.id)
//	    propagate_from(cell.id)
//
// Rules must already be installed (field.InstallRules) before Run is
// called. Run returns nil on full collapse; otherwise it has already
// reported a Diagnostic through the field's reporter and returns the
// triggering error.
func (e *Engine) Run() error {
	if _, err := PropagateInitial(e.field); err != nil {
		ReportContradiction(e.field, err)
		return err
	}

	for !e.field.IsFullyCollapsed() && !e.field.HasContradiction() {
		if e.tick != nil {
			if err := e.tick(e.field); err != nil {
				e.field.Reporter().Report(diagnostic.General, diagnostic.Fatal,
					source.Position{}, "", "aborted by tick callback: "+err.Error())
				return err
			}
		}

		cellID, ok := e.field.LowestEntropyCell()
		if !ok {
			break
		}

		cell := e.field.Cell(cellID)
		stateID := weightedPick(cell.LiveStates())

		e.log.WithFields(logrus.Fields{"cell": cellID, "state": stateID}).Debug("collapsing cell")

		if err := e.field.Collapse(cellID, stateID); err != nil {
			ReportContradiction(e.field, err)
			return err
		}

		if _, err := PropagateFrom(e.field, cellID); err != nil {
			ReportContradiction(e.field, err)
			return err
		}
	}

	if e.field.HasContradiction() {
		cellID, _ := e.field.ContradictionCell()
		err := &field.ContradictionError{Cell: cellID}
		ReportContradiction(e.field, err)
		return err
	}

	return nil
}

// ReportContradiction builds the best-effort explanation described in
// spec.md §4.5 ("the last constraint whose reduction produced the empty
// set and the constraint preceding it in the queue") from f's reduction
// history, and emits one Diagnostic, categorized by the originating
// constraint's Kind (category Propagation when no constraint is known, as
// for a Collapse onto a state that is no longer live). Errors that are not
// a *field.ContradictionError are ignored and report nothing.
// Exported so a driver that re-runs Propagate directly — e.g. after
// installing the region rule post-collapse — can still surface a
// contradiction the same way Engine.Run does.
func ReportContradiction(f *field.Field, err error) {
	ce, ok := err.(*field.ContradictionError)
	if !ok {
		return
	}

	cell := f.Cell(ce.Cell)
	if cell == nil {
		return
	}

	category := diagnostic.Propagation
	if cid, ok := f.ContradictionConstraint(); ok {
		if c := f.Constraint(cid); c != nil {
			category = categoryForKind(c.Kind())
		}
	}

	message := f.ContradictionMessage()
	if message == "" {
		message = "propagation contradiction: cell has no remaining live states"
	}

	detail := f.ContradictionDetail()
	if detail == "" {
		if history := f.History(); len(history) > 0 {
			detail = explainFromHistory(f, history)
		} else {
			detail = "no prior reduction recorded"
		}
	}

	f.Reporter().ReportDetail(category, diagnostic.Error, cell.Position(), "", message, detail)
}

// categoryForKind maps a Constraint's Kind to the Diagnostic category its
// Contradiction is reported under (spec.md §7: "one Diagnostic of the
// constraint's kind").
func categoryForKind(k field.Kind) diagnostic.Category {
	switch k {
	case field.SyntaxKind:
		return diagnostic.Syntax
	case field.SemanticKind:
		return diagnostic.Semantic
	case field.TypeKind:
		return diagnostic.Type
	case field.RegionKind:
		return diagnostic.Region
	case field.RegimeKind:
		return diagnostic.Regime
	case field.PeriscopeKind:
		return diagnostic.Periscope
	default:
		return diagnostic.Constraint
	}
}

func explainFromHistory(f *field.Field, history []field.Reduction) string {
	var cause string

	last := history[len(history)-1]

	if c := f.Constraint(last.Constraint); c != nil {
		cause = "last narrowing constraint: " + c.Name()
	} else {
		cause = "last narrowing was an explicit collapse"
	}

	if len(history) > 1 {
		prev := history[len(history)-2]
		if pc := f.Constraint(prev.Constraint); pc != nil {
			cause += "; preceding constraint: " + pc.Name()
		}
	}

	return cause
}
