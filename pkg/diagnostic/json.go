package diagnostic

import "encoding/json"

// jsonPosition is a 0-based LSP position (spec.md §6), converted at this
// boundary only — internal positions stay 1-indexed everywhere else
// (spec.md §9.4).
type jsonPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type jsonRange struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

// jsonDiagnostic matches exactly the shape spec.md §6 specifies for the LSP
// bridge: a flat object with a range, message, integer severity and a fixed
// source tag.
type jsonDiagnostic struct {
	Range    jsonRange `json:"range"`
	Message  string    `json:"message"`
	Severity int       `json:"severity"`
	Source   string    `json:"source"`
}

func toJSONDiagnostic(d *Diagnostic) jsonDiagnostic {
	line := d.Position.Line - 1
	if line < 0 {
		line = 0
	}

	col := d.Position.Column - 1
	if col < 0 {
		col = 0
	}

	return jsonDiagnostic{
		Range: jsonRange{
			Start: jsonPosition{Line: line, Character: col},
			End:   jsonPosition{Line: line, Character: col + d.Position.Length},
		},
		Message:  d.Message,
		Severity: d.Severity.LSPSeverity(),
		Source:   "braggi",
	}
}

// JSON renders every diagnostic as the LSP-shaped JSON array from spec.md
// §6, for consumption by an LSP bridge (out of scope per spec.md §1 — this
// is the one wire format the core hands across that boundary).
func (r *Reporter) JSON() ([]byte, error) {
	out := make([]jsonDiagnostic, 0, len(r.diagnostics))

	for _, d := range r.diagnostics {
		out = append(out, toJSONDiagnostic(d))
	}

	return json.Marshal(out)
}
