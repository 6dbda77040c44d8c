// Package compile wires the phases together into the one library entry
// point a driver (the CLI in cmd/braggi, or an eventual LSP bridge) calls:
// tokenize, seed the field, collapse, derive the region tree, and emit.
// This mirrors the teacher's pkg/corset.CompileSourceFiles as the single
// function that owns phase sequencing, parameterized by a
// config.CompilationConfig the way CompileSourceFiles takes a
// CompilationConfig.
package compile

import (
	"fmt"

	"github.com/iregaddr/braggi/pkg/config"
	"github.com/iregaddr/braggi/pkg/diagnostic"
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/output"
	"github.com/iregaddr/braggi/pkg/region"
	"github.com/iregaddr/braggi/pkg/source"
	"github.com/iregaddr/braggi/pkg/token"
	"github.com/iregaddr/braggi/pkg/wfccc"
)

// Result is everything a driver needs after one compile: the collapsed
// field (nil if tokenization failed before a field could be built), its
// derived region tree (nil until the field is fully collapsed), and the
// reporter every diagnostic was recorded through.
type Result struct {
	Field    *field.Field
	Tree     *region.Tree
	Reporter *diagnostic.Reporter
}

// tagForToken maps a lexical Token into the single candidate State its
// cell is seeded with, for any token whose lexical class is unambiguous.
func tagForToken(id field.StateID, tok token.Token) field.State {
	return field.State{
		ID:      id,
		TypeTag: tok.Type.String(),
		Label:   tok.Text,
		Weight:  1,
		Payload: field.TokenPayload(tok),
	}
}

// regimeAmbiguousWords are lexed as Keyword by token.Tokenizer's flat
// keywords map regardless of context, even though nothing about spec.md
// §6's grammar reserves them outside a `regime` clause — the same spelling
// is a perfectly valid Identifier anywhere else (a field, function, or
// binding literally named SEQ). Real source overwhelmingly means the
// regime reading, so that reading is seeded at twice the identifier
// reading's weight and left for the engine to resolve: spec.md §8 E6's
// "ambiguous grammar resolved by weights" — nothing forces the choice
// until weighted_pick breaks the tie by weight.
var regimeAmbiguousWords = map[string]bool{
	"FIFO": true, "FILO": true, "SEQ": true, "RAND": true,
}

// seedStates returns the candidate states a lexical cell should be seeded
// with, starting at state id nextID. Ordinary tokens get the single state
// tagForToken builds; a regime-name keyword is genuinely ambiguous with an
// identifier reading, so it is seeded with both, giving the WFCCC main
// loop (spec.md §4.5) a real cell to observe and collapse instead of a
// field that is born fully collapsed.
func seedStates(nextID field.StateID, tok token.Token) []field.State {
	if tok.Type != token.Keyword || !regimeAmbiguousWords[tok.Text] {
		return []field.State{tagForToken(nextID, tok)}
	}

	keyword := tagForToken(nextID, tok)
	keyword.Weight = 2

	identTok := tok
	identTok.Type = token.Identifier

	identifier := field.State{
		ID:      nextID + 1,
		TypeTag: identTok.Type.String(),
		Label:   identTok.Text,
		Weight:  1,
		Payload: field.TokenPayload(identTok),
	}

	return []field.State{keyword, identifier}
}

// File compiles one named source file's contents under cfg, returning a
// Result whose Reporter carries every diagnostic produced along the way.
// No error value is returned: every failure is reported as an Error/Fatal
// diagnostic on Result.Reporter, per spec.md §7's "no exceptions cross the
// core's boundary".
func File(name string, contents []byte, cfg config.CompilationConfig) Result {
	reporter := diagnostic.NewReporter("compile")
	registry := source.NewRegistry()
	src := registry.Add(name, contents)

	tokenizer := token.NewTokenizer(src)
	tokens := tokenizer.Tokenize()

	for _, e := range tokenizer.Diagnostics() {
		reporter.Report(diagnostic.Syntax, diagnostic.Error, src.PositionOf(e.Span()), name, e.Message())
	}

	f := field.NewField(src.ID(), reporter)

	var nextStateID field.StateID

	for _, tok := range tokens {
		if tok.Type.IsTrivia() {
			continue
		}

		states := seedStates(nextStateID, tok)
		nextStateID += field.StateID(len(states))

		f.AddCellWithStates(tok.Position, states)
	}

	if cfg.Stdlib {
		f.AddRule(newStdlibRule())
		f.InstallRules()
	}

	engine := wfccc.NewEngine(f)

	if cfg.TickBudget > 0 {
		ticks := 0
		engine.OnTick(func(*field.Field) error {
			ticks++
			if ticks > cfg.TickBudget {
				return fmt.Errorf("tick budget of %d exceeded", cfg.TickBudget)
			}

			return nil
		})
	}

	if err := engine.Run(); err != nil {
		return Result{Field: f, Reporter: reporter}
	}

	if !f.IsFullyCollapsed() {
		return Result{Field: f, Reporter: reporter}
	}

	f.AddRule(region.NewRule())
	f.InstallRules()

	// The region constraints just installed only report; they never
	// narrow an already-collapsed cell's candidate set. Re-running
	// Propagate still gives them a chance to raise a contradiction (e.g.
	// an incompatible periscope) against the finished syntactic skeleton.
	if _, err := wfccc.PropagateInitial(f); err != nil {
		wfccc.ReportContradiction(f, err)
	}

	return Result{Field: f, Tree: region.Build(f), Reporter: reporter}
}

// Emit runs the Output Adapter over a successfully collapsed Result.
func Emit(res Result, emit output.Emitter) error {
	return output.Run(res.Field, emit)
}
