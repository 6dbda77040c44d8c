// Package diagnostic implements the Error Reporter (spec.md §4.8, §7): a
// structured Diagnostic with category, severity and position, collected
// into an ordered Reporter that every other component reports through.
package diagnostic

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/source"
)

// Category classifies the origin of a Diagnostic, per spec.md §7.
type Category uint8

// Diagnostic categories, per spec.md §7.
const (
	Syntax Category = iota
	Semantic
	Type
	Region
	Regime
	Periscope
	Constraint
	Propagation
	IO
	Memory
	Internal
	General
)

var categoryNames = [...]string{
	"Syntax", "Semantic", "Type", "Region", "Regime", "Periscope",
	"Constraint", "Propagation", "IO", "Memory", "Internal", "General",
}

// String implements fmt.Stringer.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}

	return "Unknown"
}

// Severity orders a Diagnostic's urgency, per spec.md §3 and §4.8.
type Severity uint8

// Severity levels, per spec.md §3.
const (
	Note Severity = iota
	Warning
	Error
	Fatal
)

var severityNames = [...]string{"Note", "Warning", "Error", "Fatal"}

// String implements fmt.Stringer.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}

	return "Unknown"
}

// LSPSeverity converts to the 1-based LSP severity numbering used by the
// diagnostic JSON boundary (spec.md §6): 1=Error, 2=Warning, 3=Information,
// 4=Hint. Braggi has no Information level, so Note maps to Hint (4) and
// everything at or above Error maps to Error (1).
func (s Severity) LSPSeverity() int {
	switch s {
	case Fatal, Error:
		return 1
	case Warning:
		return 2
	case Note:
		return 4
	default:
		return 4
	}
}

// ID uniquely identifies a Diagnostic within a single compilation.
type ID uint32

// Diagnostic is a structured compiler message, per spec.md §3.
type Diagnostic struct {
	ID       ID
	Category Category
	Severity Severity
	Position source.Position
	FileName string
	Message  string
	// Detail carries an optional multi-line elaboration — e.g. the
	// best-effort contradiction explanation from spec.md §4.5, or a region
	// compatibility suggestion from spec.md §4.6.
	Detail string
}

// Error implements the error interface so a Diagnostic can be returned,
// wrapped, or combined with go.uber.org/multierr like any other error.
func (d *Diagnostic) Error() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s [%s]: %s:%d:%d: %s", d.Severity, d.Category, d.FileName, d.Position.Line, d.Position.Column, d.Message)
	}

	return fmt.Sprintf("%s [%s]: %s:%d:%d: %s\n%s", d.Severity, d.Category, d.FileName, d.Position.Line, d.Position.Column, d.Message, d.Detail)
}
