// Package source provides the immutable text-and-position model shared by
// the tokenizer, the entropy field and the diagnostic reporter. A Source is
// identified by a stable FileID, and every position it hands out is
// expressed as line/column/length/offset so that downstream components never
// need to re-scan the original text.
package source

import (
	"fmt"
	"os"
)

// FileID stably identifies one Source within a single compilation. It is
// assigned by a Registry and never reused within that registry's lifetime.
type FileID uint32

// Position locates a span of text within a single Source. Line and Column
// are 1-indexed per spec.md §9.4; Offset and Length are 0-indexed rune
// offsets into the Source's text, retained so diagnostics can recover the
// exact text of the span without rescanning.
type Position struct {
	File   FileID
	Line   int
	Column int
	Length int
	Offset int
}

// String renders a position as "file:line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.File, p.Line, p.Column)
}

// Source is an immutable, fully-read source file together with a
// precomputed line-start table so that any rune Span can be resolved to a
// Position in O(log lines) time.
type Source struct {
	id         FileID
	name       string
	text       []rune
	lineStarts []int
}

// New constructs a Source from raw bytes, decoding them as UTF-8 runes and
// precomputing the line-start table eagerly (Source is immutable once
// built, so there is no benefit in deferring this).
func New(id FileID, name string, contents []byte) *Source {
	text := []rune(string(contents))
	starts := []int{0}

	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Source{id, name, text, starts}
}

// ReadFile constructs a Source by reading a file from disk.
func ReadFile(id FileID, path string) (*Source, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return New(id, path, bytes), nil
}

// ID returns the stable identifier for this source.
func (s *Source) ID() FileID { return s.id }

// Name returns the file name (or other human-readable label) for this
// source.
func (s *Source) Name() string { return s.name }

// Text returns the full decoded contents of this source.
func (s *Source) Text() []rune { return s.text }

// LineCount returns the number of physical lines in this source. A source
// with no trailing newline still counts its final partial line.
func (s *Source) LineCount() int { return len(s.lineStarts) }

// LineLength returns the number of runes on the given 1-indexed line,
// excluding the terminating newline.
func (s *Source) LineLength(line int) int {
	if line < 1 || line > len(s.lineStarts) {
		return 0
	}

	start := s.lineStarts[line-1]
	end := len(s.text)

	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1 // exclude the '\n' itself
	}

	return max(0, end-start)
}

// lineAt finds the 1-indexed line containing a given rune offset via binary
// search over the line-start table.
func (s *Source) lineAt(offset int) int {
	lo, hi := 0, len(s.lineStarts)-1

	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo + 1
}

// PositionOf resolves a Span within this source's text into a 1-indexed
// line/column Position. Column counts runes from the start of the line,
// starting at 1.
func (s *Source) PositionOf(span Span) Position {
	line := s.lineAt(span.Start())
	column := span.Start() - s.lineStarts[line-1] + 1

	return Position{
		File:   s.id,
		Line:   line,
		Column: column,
		Length: span.Length(),
		Offset: span.Start(),
	}
}

// SyntaxError constructs a SyntaxError anchored at the given span of this
// source.
func (s *Source) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// SyntaxError is a structured error retaining the span of the original text
// where it arose, so a diagnostic reporter can recover the offending line
// without re-parsing.
type SyntaxError struct {
	src *Source
	// span of the original text on which this error is reported.
	span Span
	msg  string
}

// Source returns the source file this error was raised against.
func (e *SyntaxError) Source() *Source { return e.src }

// Span returns the span of text this error covers.
func (e *SyntaxError) Span() Span { return e.span }

// Message returns the human-readable message for this error.
func (e *SyntaxError) Message() string { return e.msg }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	pos := e.src.PositionOf(e.span)
	return fmt.Sprintf("%s:%d:%d: %s", e.src.Name(), pos.Line, pos.Column, e.msg)
}
