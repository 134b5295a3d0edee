// Package shape resolves catalog definitions and board descriptions into
// canonical local-space outlines. Every resolved outline is closed, wound
// counter-clockwise, and anchored so the shape's rotation reference point
// (the centroid, or the center for circles and regular polygons) sits at
// the local origin.
package shape

import (
	"fmt"
	"math"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

const (
	// circleSegments is the fixed vertex count used to approximate circles.
	// At the catalog's radii a 48-gon keeps area error under 0.3%.
	circleSegments = 48
	// arcSegmentsPerQuarter controls subdivision of rounded polygon
	// corners: segments per 90 degrees of swept arc.
	arcSegmentsPerQuarter = 16
	// boardCutSegments is the subdivision of the quarter-round board cut.
	boardCutSegments = 24
)

// Resolve turns a catalog definition into its local-space outline.
func Resolve(def model.ShapeDef) (model.Outline, error) {
	var o model.Outline
	switch def.Kind {
	case model.KindRect:
		if err := positive(def.ID, "w", def.W); err != nil {
			return nil, err
		}
		if err := positive(def.ID, "h", def.H); err != nil {
			return nil, err
		}
		o = model.Outline{
			{X: 0, Y: 0}, {X: def.W, Y: 0},
			{X: def.W, Y: def.H}, {X: 0, Y: def.H},
		}

	case model.KindEquilateralTriangle:
		if err := positive(def.ID, "side", def.Side); err != nil {
			return nil, err
		}
		h := def.Side * math.Sqrt(3) / 2
		o = model.Outline{
			{X: 0, Y: 0}, {X: def.Side, Y: 0}, {X: def.Side / 2, Y: h},
		}

	case model.KindRightTriangle:
		if err := positive(def.ID, "a", def.A); err != nil {
			return nil, err
		}
		if err := positive(def.ID, "b", def.B); err != nil {
			return nil, err
		}
		o = model.Outline{{X: 0, Y: 0}, {X: def.A, Y: 0}, {X: 0, Y: def.B}}

	case model.KindRegularPolygon:
		if def.N < 3 {
			return nil, fmt.Errorf("%w: shape %q regular_polygon needs n >= 3, got %d",
				model.ErrInvalidParameter, def.ID, def.N)
		}
		if err := positive(def.ID, "side", def.Side); err != nil {
			return nil, err
		}
		r := def.Side / (2 * math.Sin(math.Pi/float64(def.N)))
		o = make(model.Outline, def.N)
		for i := 0; i < def.N; i++ {
			a := 2 * math.Pi * float64(i) / float64(def.N)
			o[i] = model.Point2D{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		return o, nil // already centered

	case model.KindCircle:
		r := def.D / 2
		if r == 0 {
			r = def.R
		}
		if r <= 0 {
			return nil, fmt.Errorf("%w: shape %q circle needs d or r > 0",
				model.ErrInvalidParameter, def.ID)
		}
		o = make(model.Outline, circleSegments)
		for i := 0; i < circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			o[i] = model.Point2D{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		return o, nil // already centered

	case model.KindIsoscelesTrapezoid:
		if err := positive(def.ID, "base_bottom", def.BaseBottom); err != nil {
			return nil, err
		}
		if err := positive(def.ID, "base_top", def.BaseTop); err != nil {
			return nil, err
		}
		if err := positive(def.ID, "height", def.Height); err != nil {
			return nil, err
		}
		inset := (def.BaseBottom - def.BaseTop) / 2
		o = model.Outline{
			{X: 0, Y: 0}, {X: def.BaseBottom, Y: 0},
			{X: inset + def.BaseTop, Y: def.Height}, {X: inset, Y: def.Height},
		}

	case model.KindParallelogram:
		if err := positive(def.ID, "base", def.Base); err != nil {
			return nil, err
		}
		if err := positive(def.ID, "height", def.Height); err != nil {
			return nil, err
		}
		o = model.Outline{
			{X: 0, Y: 0}, {X: def.Base, Y: 0},
			{X: def.OffsetTop + def.Base, Y: def.Height}, {X: def.OffsetTop, Y: def.Height},
		}

	case model.KindPolygon:
		if len(def.Points) < 3 {
			return nil, fmt.Errorf("%w: shape %q polygon needs at least 3 points",
				model.ErrInvalidParameter, def.ID)
		}
		for _, v := range def.Points {
			if v.Round < 0 {
				return nil, fmt.Errorf("%w: shape %q has negative corner radius",
					model.ErrInvalidParameter, def.ID)
			}
		}
		o = RoundedPolygon(def.Points)

	default:
		return nil, fmt.Errorf("%w: %q (shape %q)", model.ErrInvalidShapeKind, def.Kind, def.ID)
	}

	o = ccw(o)
	c := o.Centroid()
	return o.Translate(-c.X, -c.Y), nil
}

func positive(id, field string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: shape %q field %q must be > 0, got %g",
			model.ErrInvalidParameter, id, field, v)
	}
	return nil
}

// ccw reverses the outline if it is wound clockwise.
func ccw(o model.Outline) model.Outline {
	if o.SignedArea() >= 0 {
		return o
	}
	r := make(model.Outline, len(o))
	for i, p := range o {
		r[len(o)-1-i] = p
	}
	return r
}

// RoundedPolygon expands a vertex list into a plain outline, replacing each
// rounded vertex with a circular arc tangent to both adjacent edges. The
// arc is subdivided at a fixed rate per quarter turn so the result does not
// depend on any output resolution.
func RoundedPolygon(verts []model.PolygonVertex) model.Outline {
	n := len(verts)
	out := make(model.Outline, 0, n)
	for i, v := range verts {
		if v.Round <= 0 {
			out = append(out, model.Point2D{X: v.X, Y: v.Y})
			continue
		}
		prev := verts[(i-1+n)%n]
		next := verts[(i+1)%n]
		out = append(out, roundCorner(v, prev, next)...)
	}
	return out
}

// roundCorner replaces corner v with the tangent arc between its edges.
// Falls back to the sharp corner when the geometry degenerates.
func roundCorner(v, prev, next model.PolygonVertex) model.Outline {
	v1x, v1y := unit(prev.X-v.X, prev.Y-v.Y)
	v2x, v2y := unit(next.X-v.X, next.Y-v.Y)
	if (v1x == 0 && v1y == 0) || (v2x == 0 && v2y == 0) {
		return model.Outline{{X: v.X, Y: v.Y}}
	}
	r := v.Round
	start := model.Point2D{X: v.X + v1x*r, Y: v.Y + v1y*r}
	end := model.Point2D{X: v.X + v2x*r, Y: v.Y + v2y*r}
	center := model.Point2D{X: v.X + (v1x+v2x)*r, Y: v.Y + (v1y+v2y)*r}

	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	steps := int(math.Ceil(math.Abs(delta) / (math.Pi / 2) * arcSegmentsPerQuarter))
	if steps < 1 {
		steps = 1
	}
	arc := make(model.Outline, 0, steps+1)
	arc = append(arc, start)
	for j := 1; j <= steps; j++ {
		a := a0 + delta*float64(j)/float64(steps)
		arc = append(arc, model.Point2D{
			X: center.X + r*math.Cos(a),
			Y: center.Y + r*math.Sin(a),
		})
	}
	return arc
}

func unit(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
