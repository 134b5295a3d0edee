// Package blueprint arranges a puzzle into a printable summary: one row
// for the board outline with its dimension label, then one row per
// distinct shape with a label, the piece count and that many tiled
// outlines. The result is a resolution-independent drawing description;
// rasterization is the exporter's job.
package blueprint

import (
	"fmt"
	"math"

	"github.com/piwi3910/ShapeBoard/internal/model"
	"github.com/piwi3910/ShapeBoard/internal/shape"
)

// Layout constants in mm.
const (
	padMm = 5.0
	gapMm = 8.0
)

// Font sizes in px, matching the widths the column sizing assumes.
const (
	labelFontPx = 26.0
	boardFontPx = 30.0
)

// Description is the drawing the exporters replay. Coordinates are in
// pixels with y growing downward. Rules draw first, then outlines, then
// labels.
type Description struct {
	WidthPx  int
	HeightPx int
	PxPerMm  float64

	Rules    []Rule
	Outlines []model.Outline
	Labels   []Label
}

// Rule is a thin separator line between layout cells.
type Rule struct {
	X1, Y1, X2, Y2 float64
}

// Label is a text run. Y is the baseline. Centered labels anchor on X.
type Label struct {
	Text     string
	X, Y     float64
	SizePx   float64
	Centered bool
}

// Layout produces the blueprint description for a puzzle at the given
// raster scale. Fails with EmptyPuzzle when the puzzle has no pieces and
// InvalidParameter when pxPerMm is not positive.
func Layout(pz *model.Puzzle, pxPerMm float64, lang string) (*Description, error) {
	if pxPerMm <= 0 {
		return nil, fmt.Errorf("%w: px_per_mm must be > 0, got %g", model.ErrInvalidParameter, pxPerMm)
	}
	if len(pz.Pieces) == 0 {
		return nil, fmt.Errorf("%w: nothing to lay out", model.ErrEmptyPuzzle)
	}

	groups := groupPieces(pz.Pieces, lang)

	// Column widths derive from the longest label and count so every row
	// shares the same separators.
	maxLabelChars, maxCountChars := 0, 1
	for _, g := range groups {
		if n := len([]rune(g.label)); n > maxLabelChars {
			maxLabelChars = n
		}
		if n := len(fmt.Sprintf("%d", len(g.items))); n > maxCountChars {
			maxCountChars = n
		}
	}
	labelWmm := (math.Max(float64(maxLabelChars)*26, 220) + 44) / pxPerMm
	countWmm := (math.Max(float64(maxCountChars)*20, 40) + 24) / pxPerMm

	boardBounds := pz.Board.Outline.Bounds()
	boardWmm := boardBounds.Width()
	boardHmm := boardBounds.Height()

	totalWmm := math.Max(boardWmm+labelWmm+countWmm, 160) + padMm*2
	totalHmm := padMm + boardHmm + gapMm + padMm
	rowHeights := make([]float64, len(groups))
	for i, g := range groups {
		rowW := labelWmm + countWmm
		rowH := 0.0
		for _, it := range g.items {
			b := it.Bounds()
			rowW += b.Width() + gapMm
			rowH = math.Max(rowH, b.Height())
		}
		rowHeights[i] = rowH
		totalWmm = math.Max(totalWmm, padMm*2+rowW)
		totalHmm += rowH + gapMm
	}

	d := &Description{
		WidthPx:  int(math.Ceil(totalWmm * pxPerMm)),
		HeightPx: int(math.Ceil(totalHmm * pxPerMm)),
		PxPerMm:  pxPerMm,
	}
	// Board space is y-up; raster output is y-down.
	px := func(p model.Point2D) model.Point2D {
		return model.Point2D{X: p.X * pxPerMm, Y: (totalHmm - p.Y) * pxPerMm}
	}

	xSep1 := padMm + labelWmm
	xSep2 := xSep1 + countWmm
	vline := func(x float64) {
		a := px(model.Point2D{X: x, Y: padMm})
		b := px(model.Point2D{X: x, Y: totalHmm - padMm})
		d.Rules = append(d.Rules, Rule{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
	}
	hline := func(y float64) {
		a := px(model.Point2D{X: padMm, Y: y})
		b := px(model.Point2D{X: totalWmm - padMm, Y: y})
		d.Rules = append(d.Rules, Rule{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
	}
	outline := func(o model.Outline) {
		conv := make(model.Outline, len(o))
		for i, p := range o {
			conv[i] = px(p)
		}
		d.Outlines = append(d.Outlines, conv)
	}

	vline(xSep1)
	vline(xSep2)
	hline(padMm)

	// Board row.
	cursorY := padMm
	lines := shape.BoardLabelLines(pz.Board, lang)
	baseY := px(model.Point2D{Y: cursorY + boardHmm/2}).Y
	lineGap := 34.0
	for i, txt := range lines {
		dy := float64(i-(len(lines)-1)/2) * lineGap
		d.Labels = append(d.Labels, Label{
			Text:   txt,
			X:      (padMm + 6) * pxPerMm,
			Y:      baseY + dy,
			SizePx: boardFontPx,
		})
	}
	for _, loop := range pz.Board.Loops {
		outline(loop.Translate(-boardBounds.Min.X+xSep2+2, -boardBounds.Min.Y+cursorY))
	}
	cursorY += boardHmm + gapMm
	hline(cursorY)

	// One row per shape group.
	for i, g := range groups {
		rowH := rowHeights[i]
		midY := px(model.Point2D{Y: cursorY + rowH/2}).Y
		d.Labels = append(d.Labels, Label{
			Text:   g.label,
			X:      (padMm + 2) * pxPerMm,
			Y:      midY,
			SizePx: labelFontPx,
		})
		d.Labels = append(d.Labels, Label{
			Text:     fmt.Sprintf("%d", len(g.items)),
			X:        (xSep1 + xSep2) / 2 * pxPerMm,
			Y:        midY,
			SizePx:   labelFontPx,
			Centered: true,
		})
		x := xSep2 + 2
		for _, it := range g.items {
			b := it.Bounds()
			outline(it.Translate(-b.Min.X+x, -b.Min.Y+cursorY))
			x += b.Width() + gapMm
		}
		cursorY += rowH + gapMm
		hline(cursorY)
	}

	return d, nil
}

type group struct {
	label string
	items []model.Outline
}

// groupPieces collects local outlines by shape id in first-seen order, the
// same order the coloring assigner uses.
func groupPieces(pieces []*model.Piece, lang string) []group {
	index := make(map[string]int)
	var groups []group
	for _, p := range pieces {
		key := p.ShapeID
		if key == "" {
			key = p.Def.Signature()
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{label: p.Def.Label(lang)})
		}
		groups[i].items = append(groups[i].items, p.Outline)
	}
	return groups
}
