package shape

import (
	"fmt"
	"math"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// ResolveBoard fills in the board's Outline and Loops from its definition.
// Board outlines stay in board coordinates with the origin at the lower
// left; they are not recentered like piece outlines.
func ResolveBoard(b *model.Board) error {
	switch b.Kind {
	case model.BoardRect:
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("%w: board rect needs w and h > 0", model.ErrInvalidParameter)
		}
		b.Outline = model.Outline{
			{X: 0, Y: 0}, {X: b.W, Y: 0}, {X: b.W, Y: b.H}, {X: 0, Y: b.H},
		}

	case model.BoardRectQuarterCut:
		if b.W <= 0 || b.H <= 0 || b.R <= 0 {
			return fmt.Errorf("%w: board %s needs w, h and r > 0",
				model.ErrInvalidParameter, model.BoardRectQuarterCut)
		}
		b.Outline = quarterCutRect(b.W, b.H, b.R, b.CutCorner)

	case model.BoardPolygon:
		if len(b.Polygons) == 0 {
			return fmt.Errorf("%w: board polygon needs at least one loop", model.ErrInvalidParameter)
		}
		loops := make([]model.Outline, 0, len(b.Polygons))
		for _, poly := range b.Polygons {
			if len(poly) < 3 {
				return fmt.Errorf("%w: board polygon loop needs at least 3 points",
					model.ErrInvalidParameter)
			}
			loops = append(loops, ccw(RoundedPolygon(poly)))
		}
		b.Loops = loops
		// Containment runs against the largest loop; smaller loops are
		// decorative in the blueprint.
		best := 0
		for i, l := range loops {
			if l.Area() > loops[best].Area() {
				best = i
			}
		}
		b.Outline = loops[best]
		return nil

	default:
		return fmt.Errorf("%w: %q", model.ErrInvalidBoardKind, b.Kind)
	}
	b.Loops = []model.Outline{b.Outline}
	return nil
}

// quarterCutRect builds a w x h rectangle with one corner replaced by an
// inward quarter-circle cut of radius r. Only the topright corner has a
// defined cut; other values fall back to the plain rectangle.
func quarterCutRect(w, h, r float64, corner string) model.Outline {
	if corner == "" {
		corner = "topright"
	}
	if corner != "topright" {
		return model.Outline{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	}
	cx, cy := w-r, h-r
	pts := model.Outline{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h - r},
	}
	for i := 0; i <= boardCutSegments; i++ {
		a := math.Pi / 2 * float64(i) / boardCutSegments
		pts = append(pts, model.Point2D{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	pts = append(pts, model.Point2D{X: 0, Y: h})
	return pts
}

// BoardLabelLines generates the blueprint's left-column description of the
// board: exact dimensions, plus corner radius when the outline is cut.
func BoardLabelLines(b model.Board, lang string) []string {
	switch b.Kind {
	case model.BoardRect:
		return []string{fmt.Sprintf("%g x %g mm", b.W, b.H)}
	case model.BoardRectQuarterCut:
		if lang == "zh" {
			return []string{
				fmt.Sprintf("%g x %g mm", b.W, b.H),
				fmt.Sprintf("圆角 R%g mm", b.R),
			}
		}
		return []string{
			fmt.Sprintf("%g x %g mm", b.W, b.H),
			fmt.Sprintf("corner R%g mm", b.R),
		}
	default:
		bounds := b.Outline.Bounds()
		return []string{fmt.Sprintf("%.0f x %.0f mm", bounds.Width(), bounds.Height())}
	}
}
