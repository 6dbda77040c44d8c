package field

import "github.com/iregaddr/braggi/pkg/source"

// Kind classifies a Constraint, per spec.md §3.
type Kind uint8

// Constraint kinds, per spec.md §3.
const (
	SyntaxKind Kind = iota
	SemanticKind
	TypeKind
	RegionKind
	RegimeKind
	PeriscopeKind
	CustomKind
)

var kindNames = [...]string{
	"Syntax", "Semantic", "Type", "Region", "Regime", "Periscope", "Custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// ResultKind classifies what a Constraint's validator decided.
type ResultKind uint8

// Result kinds, per spec.md §4.3.
const (
	Satisfiable ResultKind = iota
	Reduced
	ContradictionResult
)

// Result is what a Constraint's validator returns after inspecting the
// current live-state sets of its bound cells (spec.md §4.3). Validators
// must be monotone: the same live-state sets always produce the same
// Result, and a Reduce never re-introduces an eliminated state.
type Result struct {
	Kind ResultKind
	// Retain holds, for Kind == Reduced, the set of state ids each bound
	// cell should retain; any live state of that cell not present here is
	// eliminated. Cells absent from Retain are left untouched.
	Retain map[CellID]map[StateID]bool
	// Cell is the cell that would be emptied, for Kind == ContradictionResult.
	Cell CellID
	// Message and Detail supply the text of the Diagnostic the engine
	// reports for a ContradictionResult (spec.md §4.3, §7): the validator,
	// not the engine, knows why the contradiction occurred.
	Message string
	Detail  string
}

// OK constructs a Satisfiable Result (no change).
func OK() Result {
	return Result{Kind: Satisfiable}
}

// ReduceTo constructs a Reduced Result from a map of cell to retained state
// ids.
func ReduceTo(retain map[CellID]map[StateID]bool) Result {
	return Result{Kind: Reduced, Retain: retain}
}

// Contradiction constructs a ContradictionResult for the given cell, with
// the message/detail the engine will attach to the resulting Diagnostic.
func Contradiction(cell CellID, message, detail string) Result {
	return Result{Kind: ContradictionResult, Cell: cell, Message: message, Detail: detail}
}

// View is the read-only window into a Field that Constraint validators
// operate over (spec.md §5: "validators... never mutate the Field
// directly"). It exposes only what a validator needs: live states and
// positions of the cells it is bound to, and lookups across the whole
// field for constraints (like Adjacency and Region/Regime) that need to
// inspect neighbouring or unrelated cells.
type View interface {
	// LiveStates returns the currently-live states of the given cell.
	LiveStates(cell CellID) []State
	// Position returns the source position of the given cell.
	Position(cell CellID) source.Position
	// NumCells returns the total number of cells in the field.
	NumCells() int
}

// Constraint binds a subset of cells with a validation predicate (spec.md
// §4.3). Concrete kinds — Adjacency (pkg/constraint), Functional/Pattern
// (pkg/pattern), Region/Regime/Periscope (pkg/region) — all implement this
// interface and are registered into a Field via Field.AddConstraint.
type Constraint interface {
	// Name returns a unique, human-readable label for this constraint,
	// useful in diagnostics and logging.
	Name() string
	Kind() Kind
	// Cells returns the cell ids this constraint is bound to.
	Cells() []CellID
	// Validate inspects the current live-state sets of the bound cells
	// (via view) and returns Satisfiable, a Reduce, or a Contradiction.
	Validate(view View) Result
}

// Rule is a constraint factory: run once against a Field, it emits one or
// more Constraints (spec.md §3, §4.2).
type Rule interface {
	Name() string
	Description() string
	Apply(f *Field) []Constraint
}
