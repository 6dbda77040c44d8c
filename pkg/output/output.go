// Package output implements the Output Adapter (spec.md §4.7): after
// collapse, it enumerates cells in tokenization order, produces
// (token, chosen_state) pairs, and hands them to an Emitter. It never
// interprets a payload beyond asserting the field is fully collapsed.
package output

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/field"
)

// Pair is one emitted (cell, chosen state) result, in source order.
type Pair struct {
	Cell  field.CellID
	State field.State
}

// Emitter consumes collapsed pairs one at a time, in order. Concrete
// emitters (text rendering, a downstream IR builder, a test spy) implement
// this; none live in this package.
type Emitter interface {
	Emit(p Pair) error
}

// EmitterFunc adapts a plain function to an Emitter.
type EmitterFunc func(p Pair) error

// Emit implements Emitter.
func (f EmitterFunc) Emit(p Pair) error { return f(p) }

// Run enumerates every cell of f in id order and hands its collapsed pair
// to emit. If any cell is not collapsed, it reports a Fatal diagnostic at
// that cell's position and returns immediately without emitting further
// pairs — per spec.md §4.7, "the adapter guarantees every cell is
// collapsed; if not, it fails with a Fatal diagnostic."
func Run(f *field.Field, emit Emitter) error {
	for _, c := range f.Cells() {
		if !c.IsCollapsed() {
			f.Reporter().Report(diagnostic.Internal, diagnostic.Fatal, c.Position(), "",
				fmt.Sprintf("cell %d reached output with %d live states, expected exactly 1", c.ID(), c.Entropy()))

			return fmt.Errorf("output: cell %d is not collapsed", c.ID())
		}

		if err := emit.Emit(Pair{Cell: c.ID(), State: c.CollapsedState()}); err != nil {
			return fmt.Errorf("output: emit cell %d: %w", c.ID(), err)
		}
	}

	return nil
}

// TextEmitter renders each chosen state's label in source order, separated
// by a single space, the simplest possible emitter — useful for tests and
// as the CLI's default text output. Positions are only used to preserve
// line breaks between tokens on different source lines. States with an
// empty label (such as the Eof sentinel) add nothing to the output.
type TextEmitter struct {
	lastLine int
	out      []byte
}

// NewTextEmitter constructs an empty TextEmitter.
func NewTextEmitter() *TextEmitter { return &TextEmitter{lastLine: -1} }

// Emit implements Emitter.
func (t *TextEmitter) Emit(p Pair) error {
	if p.State.Label == "" {
		return nil
	}

	pos := p.State.Payload.Token.Position
	line := pos.Line

	if t.lastLine == -1 {
		t.lastLine = line
	} else if line != t.lastLine {
		t.out = append(t.out, '\n')
		t.lastLine = line
	} else if len(t.out) > 0 {
		t.out = append(t.out, ' ')
	}

	t.out = append(t.out, []byte(p.State.Label)...)

	return nil
}

// String returns everything emitted so far.
func (t *TextEmitter) String() string { return string(t.out) }
