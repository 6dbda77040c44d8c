package region

import (
	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/token"
	"github.com/iregaddr/braggi/pkg/util"
)

// regionFrame tracks one still-open region while Build walks the
// collapsed token sequence, stack-discipline matching `{`/`}` nesting
// (spec.md §4.6's "lifetimes are lexical and form a tree"). braceDepth
// counts braces opened since this region's own `{`, so a region only
// closes on the `}` that matches it, not some inner block's. frameID is
// assigned once, at push time, and never reused — it is the stable key a
// forward periscope reference resolves against later, since stack depth
// and final region index both shift as sibling frames pop.
type regionFrame struct {
	region     Region
	braceDepth int
	frameID    int
}

// builder carries the scan state for one Build call. parentFrame is kept
// parallel to regions (by final index): a closing child's parent is still
// on the stack and has no final ID yet, so the link is recorded by frameID
// and patched once every frame has finished.
type builder struct {
	stack       []regionFrame
	regions     []Region
	parentFrame []int
	nextFrame   int
	frameToID   map[int]ID
	unresolved  []pendingTarget
}

type pendingTarget struct {
	frameID, periscopeIdx int
	name                  string
}

func lexeme(c *field.Cell) (typ token.Type, text string) {
	s := c.CollapsedState()
	if s.Payload.Kind != field.LexicalPayload {
		return token.Invalid, ""
	}

	return s.Payload.Token.Type, s.Payload.Token.Text
}

// Build derives a Tree by scanning a fully collapsed field's token
// sequence for the RegionDecl and Periscope productions (spec.md §6's
// grammar): `region Ident ('regime' Regime)? Block` and
// `periscope Expr 'to' Ident Block`. Regions nest exactly as their braces
// do. A region whose closing brace is never found extends to the end of
// the field.
func Build(f *field.Field) *Tree {
	b := &builder{frameToID: make(map[int]ID)}

	cells := f.Cells()
	i := 0

	for i < len(cells) {
		c := cells[i]
		if !c.IsCollapsed() {
			i++
			continue
		}

		typ, text := lexeme(c)

		switch {
		case typ == token.Keyword && text == "region":
			i = b.openRegion(cells, i)

		case typ == token.Keyword && text == "periscope":
			i = b.openPeriscope(cells, i)

		case typ == token.Keyword && text == "let":
			i = b.openLet(cells, i)

		case typ == token.Punctuation && text == "{":
			b.enterBrace()
			i++

		case typ == token.Punctuation && text == "}":
			i = b.closeBrace(cells, i)

		default:
			i++
		}
	}

	last := field.CellID(0)
	if n := f.NumCells(); n > 0 {
		last = field.CellID(n - 1)
	}

	for len(b.stack) > 0 {
		fr := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.finish(fr, last)
	}

	b.resolveTargets()

	return NewTree(b.regions)
}

// openRegion consumes `region Ident ('regime' Regime)?` starting at index
// i (the `region` keyword cell) and pushes a new open frame, returning the
// index to resume scanning from.
func (b *builder) openRegion(cells []*field.Cell, i int) int {
	name := ""
	j := i + 1

	if j < len(cells) && cells[j].IsCollapsed() {
		if typ, text := lexeme(cells[j]); typ == token.Identifier {
			name = text
			j++
		}
	}

	regime := RegimeRAND // default per spec.md §4.6

	hasRegime := false
	regimeCell := field.CellID(0)

	if j < len(cells) && cells[j].IsCollapsed() {
		if typ, text := lexeme(cells[j]); typ == token.Keyword && text == "regime" {
			j++
			if j < len(cells) && cells[j].IsCollapsed() {
				hasRegime = true
				regimeCell = cells[j].ID()

				if _, rtext := lexeme(cells[j]); true {
					if r, ok := ParseRegime(rtext); ok {
						regime = r
					}
				}

				j++
			}
		}
	}

	b.nextFrame++

	b.stack = append(b.stack, regionFrame{
		frameID: b.nextFrame,
		region: Region{
			Name:       name,
			Regime:     regime,
			HasRegime:  hasRegime,
			RegimeCell: regimeCell,
			FirstCell:  cells[i].ID(),
			LastCell:   cells[i].ID(),
		},
	})

	return j
}

// openPeriscope consumes `periscope Expr 'to' Ident` starting at index i
// (the `periscope` keyword cell): it skips the expression by scanning
// forward for the `to` keyword, then records the following identifier as
// the target name. The periscope is attached to whichever region is
// currently open (spec.md §4.6 only makes sense nested inside a region).
// Direction is recorded as Out: the enclosing region is the source
// extending a value's lifetime outward to the named target.
func (b *builder) openPeriscope(cells []*field.Cell, i int) int {
	periscopeCell := cells[i].ID()
	j := i + 1

	for j < len(cells) && cells[j].IsCollapsed() {
		typ, text := lexeme(cells[j])
		j++

		if typ == token.Keyword && text == "to" {
			break
		}
	}

	target := ""
	if j < len(cells) && cells[j].IsCollapsed() {
		if typ, text := lexeme(cells[j]); typ == token.Identifier {
			target = text
			j++
		}
	}

	if len(b.stack) > 0 {
		top := &b.stack[len(b.stack)-1]
		top.region.Periscopes = append(top.region.Periscopes, Periscope{Cell: periscopeCell, Direction: Out})

		b.unresolved = append(b.unresolved, pendingTarget{
			frameID:      top.frameID,
			periscopeIdx: len(top.region.Periscopes) - 1,
			name:         target,
		})
	}

	return j
}

// openLet consumes `let Ident '=' ...` starting at index i (the `let`
// keyword cell) up to and including the terminating `;`, and records an
// Allocation on whichever region is currently open (spec.md §3: "a Region
// owns allocations[]"). LifetimeEnd is left at its zero value here and
// patched in by finish once the enclosing region's own extent is known —
// every allocation's lifetime is bounded by its region's lifetime by
// construction (spec.md §4.6's Lifetime invariant), never by scanning for
// the binding's last use.
func (b *builder) openLet(cells []*field.Cell, i int) int {
	j := i + 1

	bindingCell := cells[i].ID()
	if j < len(cells) && cells[j].IsCollapsed() {
		if typ, _ := lexeme(cells[j]); typ == token.Identifier {
			bindingCell = cells[j].ID()
			j++
		}
	}

	for j < len(cells) && cells[j].IsCollapsed() {
		typ, text := lexeme(cells[j])
		j++

		if typ == token.Punctuation && text == ";" {
			break
		}
	}

	if len(b.stack) > 0 {
		top := &b.stack[len(b.stack)-1]
		top.region.Allocations = append(top.region.Allocations, Allocation{Cell: bindingCell})
	}

	return j
}

func (b *builder) enterBrace() {
	if len(b.stack) == 0 {
		return
	}

	b.stack[len(b.stack)-1].braceDepth++
}

func (b *builder) closeBrace(cells []*field.Cell, i int) int {
	if len(b.stack) == 0 {
		return i + 1
	}

	top := &b.stack[len(b.stack)-1]
	top.braceDepth--

	if top.braceDepth <= 0 {
		fr := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.finish(fr, cells[i].ID())
	}

	return i + 1
}

func (b *builder) finish(fr regionFrame, end field.CellID) {
	fr.region.LastCell = end

	for idx := range fr.region.Allocations {
		fr.region.Allocations[idx].LifetimeEnd = end
	}

	finalID := ID(len(b.regions))

	parentFrameID := -1
	if len(b.stack) > 0 {
		parentFrameID = b.stack[len(b.stack)-1].frameID
	}

	b.frameToID[fr.frameID] = finalID
	fr.region.ID = finalID
	b.regions = append(b.regions, fr.region)
	b.parentFrame = append(b.parentFrame, parentFrameID)
}

// resolveTargets patches in deferred parent links and periscope targets
// now that every frame has a final region ID.
func (b *builder) resolveTargets() {
	for i, pf := range b.parentFrame {
		if pf < 0 {
			continue
		}

		if id, ok := b.frameToID[pf]; ok {
			b.regions[i].Parent = util.Some(id)
		}
	}

	byName := make(map[string]ID, len(b.regions))
	for _, r := range b.regions {
		byName[r.Name] = r.ID
	}

	for _, pt := range b.unresolved {
		regionID, ok := b.frameToID[pt.frameID]
		if !ok || int(regionID) >= len(b.regions) {
			continue
		}

		r := &b.regions[regionID]
		if pt.periscopeIdx < 0 || pt.periscopeIdx >= len(r.Periscopes) {
			continue
		}

		p := &r.Periscopes[pt.periscopeIdx]
		p.Source = r.ID

		if id, ok := byName[pt.name]; ok {
			p.Target = id
		}
	}
}
