package diagnostic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iregaddr/braggi/pkg/source"
)

func TestReporter_StickyFlags(t *testing.T) {
	r := NewReporter("test")

	if r.HasErrors() || r.IsFatal() {
		t.Fatalf("fresh reporter should have no sticky flags set")
	}

	r.Report(Syntax, Warning, source.Position{Line: 1, Column: 1}, "f.bg", "just a warning")

	if r.HasErrors() {
		t.Fatalf("a warning must not set HasErrors")
	}

	r.Report(Region, Error, source.Position{Line: 2, Column: 3}, "f.bg", "bad region")

	if !r.HasErrors() {
		t.Fatalf("an Error diagnostic must set HasErrors")
	}

	if r.IsFatal() {
		t.Fatalf("an Error diagnostic must not set IsFatal")
	}

	r.Report(General, Fatal, source.Position{Line: 1, Column: 1}, "f.bg", "propagation incomplete")

	if !r.IsFatal() {
		t.Fatalf("a Fatal diagnostic must set IsFatal")
	}
}

func TestReporter_OrderPreserved(t *testing.T) {
	r := NewReporter("test")

	for i := range 5 {
		r.Report(Syntax, Note, source.Position{Line: i + 1, Column: 1}, "f.bg", "msg")
	}

	all := r.All()
	for i, d := range all {
		if int(d.ID) != i {
			t.Fatalf("expected diagnostics in report order, got id %d at index %d", d.ID, i)
		}
	}
}

func TestReporter_JSON_UsesZeroBasedPositions(t *testing.T) {
	r := NewReporter("test")
	r.Report(Region, Error, source.Position{Line: 3, Column: 5, Length: 9}, "f.bg", "incompatible periscope")

	raw, err := r.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []jsonDiagnostic
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	if len(decoded) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(decoded))
	}

	got := decoded[0]
	if got.Range.Start.Line != 2 || got.Range.Start.Character != 4 {
		t.Fatalf("expected 0-based 2:4, got %d:%d", got.Range.Start.Line, got.Range.Start.Character)
	}

	if got.Severity != 1 {
		t.Fatalf("expected severity 1 (Error), got %d", got.Severity)
	}
}

func TestRenderDiagnostic_TextualForm(t *testing.T) {
	d := &Diagnostic{
		Category: Region,
		Severity: Error,
		Position: source.Position{Line: 4, Column: 10, Length: 9},
		FileName: "example.bg",
		Message:  "Cannot collapse periscope from FILO to FIFO",
		Detail:   "violated constraint: regime compatibility\nsuggestion: change source regime to SEQ, or target regime to FILO",
	}

	text := renderDiagnostic(d, false)

	if !strings.Contains(text, "Cannot collapse periscope from FILO to FIFO") {
		t.Fatalf("expected message in rendered text, got: %s", text)
	}

	if !strings.Contains(text, "example.bg:4:10-19") {
		t.Fatalf("expected position range in rendered text, got: %s", text)
	}

	if !strings.Contains(text, "suggestion: change source regime to SEQ") {
		t.Fatalf("expected suggestion in rendered text, got: %s", text)
	}
}
