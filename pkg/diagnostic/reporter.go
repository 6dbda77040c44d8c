package diagnostic

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/iregaddr/braggi/pkg/source"
)

// Reporter collects diagnostics into an ordered list, tagged with the
// originating component, per spec.md §4.8. Severity >= Error sets a sticky
// HasErrors flag; Fatal additionally short-circuits subsequent phases via
// IsFatal.
type Reporter struct {
	diagnostics []*Diagnostic
	hasErrors   bool
	hasFatal    bool
	next        ID
	log         *log.Entry
}

// NewReporter constructs an empty Reporter. component is attached to every
// logrus entry emitted by this reporter (e.g. "tokenizer", "wfccc",
// "region"), matching the teacher's package-scoped logging idiom.
func NewReporter(component string) *Reporter {
	return &Reporter{log: log.WithField("component", component)}
}

// Report records a new diagnostic and returns it. This is the single choke
// point every other package reports through.
func (r *Reporter) Report(category Category, severity Severity, pos source.Position, file string, message string) *Diagnostic {
	return r.ReportDetail(category, severity, pos, file, message, "")
}

// ReportDetail is Report with an additional free-form Detail elaboration
// (spec.md §4.5's best-effort contradiction explanation, §4.6's regime
// suggestion).
func (r *Reporter) ReportDetail(category Category, severity Severity, pos source.Position, file, message, detail string) *Diagnostic {
	d := &Diagnostic{
		ID:       r.next,
		Category: category,
		Severity: severity,
		Position: pos,
		FileName: file,
		Message:  message,
		Detail:   detail,
	}
	r.next++
	r.diagnostics = append(r.diagnostics, d)

	if severity >= Error {
		r.hasErrors = true
	}

	if severity == Fatal {
		r.hasFatal = true
	}

	entry := r.log.WithFields(log.Fields{
		"category": category.String(),
		"severity": severity.String(),
		"position": pos.String(),
	})

	switch severity {
	case Fatal, Error:
		entry.Error(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}

	return d
}

// All returns every diagnostic reported so far, in report order (spec.md
// §5's ordering guarantee).
func (r *Reporter) All() []*Diagnostic {
	return r.diagnostics
}

// HasErrors reports whether any diagnostic at or above Error severity has
// been recorded. This flag is sticky: it never clears.
func (r *Reporter) HasErrors() bool {
	return r.hasErrors
}

// IsFatal reports whether a Fatal diagnostic has been recorded. A host
// should stop running subsequent phases once this is true.
func (r *Reporter) IsFatal() bool {
	return r.hasFatal
}

// Combined folds every recorded diagnostic into a single error via
// go.uber.org/multierr, for hosts that want one error value per top-level
// call rather than walking All() themselves. Returns nil if there are no
// diagnostics at or above Error severity.
func (r *Reporter) Combined() error {
	var err error

	for _, d := range r.diagnostics {
		if d.Severity >= Error {
			err = multierr.Append(err, d)
		}
	}

	return err
}

// WriteText renders every diagnostic to w in the textual failure form from
// spec.md §7. When w is a terminal (detected via golang.org/x/term), Error
// and Fatal severities are highlighted in red and Warning in yellow.
func (r *Reporter) WriteText(w io.Writer) {
	colorize := false

	if f, ok := w.(*os.File); ok {
		colorize = term.IsTerminal(int(f.Fd()))
	}

	for _, d := range r.diagnostics {
		fmt.Fprint(w, renderDiagnostic(d, colorize))
	}
}

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

func renderDiagnostic(d *Diagnostic, colorize bool) string {
	label := fmt.Sprintf("%s [%s]", d.Severity, d.Category)

	if colorize {
		switch d.Severity {
		case Fatal, Error:
			label = ansiRed + label + ansiReset
		case Warning:
			label = ansiYellow + label + ansiReset
		}
	}

	end := d.Position.Column + d.Position.Length
	out := fmt.Sprintf("%s: %s\n  at %s:%d:%d-%d\n", label, d.Message, d.FileName, d.Position.Line, d.Position.Column, end)

	if d.Detail != "" {
		out += indent(d.Detail) + "\n"
	}

	return out
}

func indent(s string) string {
	out := "  "

	for _, r := range s {
		out += string(r)

		if r == '\n' {
			out += "  "
		}
	}

	return out
}
