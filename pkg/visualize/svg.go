// Package visualize renders a Field's Cells and a region.Tree as an SVG
// diagram, a debug/inspection aid analogous to the teacher's
// pkg/cmd/corset/inspect.go — never consulted by the output adapter or any
// other core phase. Grounded on dshills/dungo's pkg/export/svg.go: same
// Options-struct-with-defaults shape, same buffer-then-canvas rendering via
// github.com/ajstarks/svgo.
package visualize

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/iregaddr/braggi/pkg/field"
	"github.com/iregaddr/braggi/pkg/region"
)

// Options configures the rendered diagram.
type Options struct {
	Width      int // Canvas width in pixels
	Height     int // Canvas height in pixels
	CellWidth  int // Width allotted to each cell column
	CellHeight int // Height of a cell's box
	Margin     int
	ShowLabels bool
	Title      string
}

// DefaultOptions returns sensible default rendering options.
func DefaultOptions() Options {
	return Options{
		Width:      1400,
		Height:     400,
		CellWidth:  60,
		CellHeight: 50,
		Margin:     40,
		ShowLabels: true,
		Title:      "Entropy Field",
	}
}

// entropyColor shades a cell by live-state count: collapsed cells render
// green, the contradiction site and empty cells render red, and every
// other cell renders one orange whatever its live-state count.
func entropyColor(c *field.Cell, isContradiction bool) string {
	switch {
	case isContradiction:
		return "#e63946"
	case c.IsCollapsed():
		return "#2a9d8f"
	case c.IsEmpty():
		return "#e63946"
	default:
		return "#f4a261"
	}
}

// RenderField draws f's cells left to right in tokenization order, each
// colored by entropy/collapsed-ness, labeled with its live-state count (or
// its collapsed label once ShowLabels and collapsed).
func RenderField(f *field.Field, opts Options) []byte {
	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2, opts.Title, "fill:#ffffff;font-size:18px")
	}

	contradictionCell, hasContradiction := f.ContradictionCell()

	y := opts.Margin
	for i, c := range f.Cells() {
		x := opts.Margin + i*opts.CellWidth
		isContra := hasContradiction && c.ID() == contradictionCell

		canvas.Rect(x, y, opts.CellWidth-4, opts.CellHeight, fmt.Sprintf("fill:%s;stroke:#0d1b2a", entropyColor(c, isContra)))

		label := fmt.Sprintf("%d", c.Entropy())
		if opts.ShowLabels && c.IsCollapsed() {
			label = c.CollapsedState().Label
		}

		canvas.Text(x+6, y+opts.CellHeight/2, label, "fill:#0d1b2a;font-size:12px")
	}

	canvas.End()

	return buf.Bytes()
}

// RenderRegionTree draws one box per region, on a row set by its first
// cell and indented by its nesting depth, labeled with its name and
// regime. Periscope edges are drawn as plain unlabeled lines between
// region boxes.
func RenderRegionTree(tree *region.Tree, opts Options) []byte {
	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	depth := make(map[region.ID]int)
	for _, r := range tree.Regions() {
		depth[r.ID] = regionDepth(tree, r.ID)
	}

	boxOf := make(map[region.ID][4]int) // x, y, w, h

	for _, r := range tree.Regions() {
		d := depth[r.ID]
		x := opts.Margin + d*30
		y := opts.Margin + int(r.FirstCell)*20
		w := opts.CellWidth * (int(r.LastCell-r.FirstCell) + 1)
		h := 20

		boxOf[r.ID] = [4]int{x, y, w, h}

		canvas.Rect(x, y, w, h, "fill:none;stroke:#e9c46a;stroke-width:2")
		canvas.Text(x+4, y+14, fmt.Sprintf("%s (%s)", r.Name, r.Regime), "fill:#ffffff;font-size:11px")
	}

	for _, r := range tree.Regions() {
		for _, p := range r.Periscopes {
			src, srcOK := boxOf[p.Source]
			dst, dstOK := boxOf[p.Target]

			if !srcOK || !dstOK {
				continue
			}

			canvas.Line(src[0]+src[2], src[1]+src[3]/2, dst[0], dst[1]+dst[3]/2, "stroke:#90e0ef;stroke-width:1")
		}
	}

	canvas.End()

	return buf.Bytes()
}

func regionDepth(tree *region.Tree, id region.ID) int {
	d := 0

	r, ok := tree.Region(id)
	for ok && r.Parent.HasValue() {
		d++
		r, ok = tree.Region(r.Parent.Unwrap())
	}

	return d
}
