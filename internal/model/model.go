package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jbeda/geom"
)

// ShapeKind identifies one of the supported shape variants.
type ShapeKind string

const (
	KindCircle              ShapeKind = "circle"
	KindRect                ShapeKind = "rect"
	KindRegularPolygon      ShapeKind = "regular_polygon"
	KindRightTriangle       ShapeKind = "right_triangle"
	KindIsoscelesTrapezoid  ShapeKind = "isosceles_trapezoid"
	KindParallelogram       ShapeKind = "parallelogram"
	KindEquilateralTriangle ShapeKind = "equilateral_triangle"
	KindPolygon             ShapeKind = "polygon"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the
// first. Winding is counter-clockwise for all resolved shapes.
type Outline []Point2D

// Bounds returns the axis-aligned bounding rectangle of the outline.
func (o Outline) Bounds() geom.Rect {
	if len(o) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{
		Min: geom.Coord{X: o[0].X, Y: o[0].Y},
		Max: geom.Coord{X: o[0].X, Y: o[0].Y},
	}
	for _, p := range o[1:] {
		r.ExpandToContainCoord(geom.Coord{X: p.X, Y: p.Y})
	}
	return r
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// SignedArea returns the shoelace area of the outline. Positive for
// counter-clockwise winding, negative for clockwise.
func (o Outline) SignedArea() float64 {
	var sum float64
	n := len(o)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return sum / 2.0
}

// Area returns the absolute area enclosed by the outline.
func (o Outline) Area() float64 {
	a := o.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Centroid returns the area centroid of the outline. For degenerate
// outlines the vertex average is returned instead.
func (o Outline) Centroid() Point2D {
	n := len(o)
	if n == 0 {
		return Point2D{}
	}
	a := o.SignedArea()
	if a == 0 {
		var c Point2D
		for _, p := range o {
			c.X += p.X
			c.Y += p.Y
		}
		c.X /= float64(n)
		c.Y /= float64(n)
		return c
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := o[i].X*o[j].Y - o[j].X*o[i].Y
		cx += (o[i].X + o[j].X) * cross
		cy += (o[i].Y + o[j].Y) * cross
	}
	return Point2D{X: cx / (6 * a), Y: cy / (6 * a)}
}

// ShapeDef describes one catalog entry. Numeric parameters are in mm;
// which fields are meaningful depends on Kind.
type ShapeDef struct {
	ID   string    `json:"id"`
	Kind ShapeKind `json:"type"`

	// rect
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`
	// equilateral_triangle, regular_polygon
	Side float64 `json:"side,omitempty"`
	// right_triangle legs
	A float64 `json:"a,omitempty"`
	B float64 `json:"b,omitempty"`
	// regular_polygon vertex count
	N int `json:"n,omitempty"`
	// circle diameter or radius
	D float64 `json:"d,omitempty"`
	R float64 `json:"r,omitempty"`
	// isosceles_trapezoid
	BaseBottom float64 `json:"base_bottom,omitempty"`
	BaseTop    float64 `json:"base_top,omitempty"`
	Height     float64 `json:"height,omitempty"`
	// parallelogram
	Base      float64 `json:"base,omitempty"`
	OffsetTop float64 `json:"offset_top,omitempty"`
	// polygon (vertices may carry a rounding radius)
	Points []PolygonVertex `json:"points,omitempty"`

	LabelEN string `json:"label_en,omitempty"`
	LabelZH string `json:"label_zh,omitempty"`
}

// Label returns the catalog label for the requested language, falling back
// to a generated dimension signature when the catalog carries none.
func (sd ShapeDef) Label(lang string) string {
	if lang == "zh" && sd.LabelZH != "" {
		return sd.LabelZH
	}
	if sd.LabelEN != "" {
		return sd.LabelEN
	}
	return sd.Signature()
}

// Signature produces a stable human-readable description of the shape's
// kind and dimensions, used for grouping and as a label fallback.
func (sd ShapeDef) Signature() string {
	switch sd.Kind {
	case KindRect:
		return fmt.Sprintf("rect %gx%g mm", sd.W, sd.H)
	case KindCircle:
		d := sd.D
		if d == 0 {
			d = sd.R * 2
		}
		return fmt.Sprintf("circle d=%g mm", d)
	case KindEquilateralTriangle:
		return fmt.Sprintf("triangle side=%g mm", sd.Side)
	case KindRightTriangle:
		return fmt.Sprintf("right triangle %gx%g mm", sd.A, sd.B)
	case KindRegularPolygon:
		return fmt.Sprintf("%d-gon side=%g mm", sd.N, sd.Side)
	case KindIsoscelesTrapezoid:
		return fmt.Sprintf("trapezoid %g/%g h=%g mm", sd.BaseBottom, sd.BaseTop, sd.Height)
	case KindParallelogram:
		return fmt.Sprintf("parallelogram %g h=%g mm", sd.Base, sd.Height)
	case KindPolygon:
		return fmt.Sprintf("polygon %d pts", len(sd.Points))
	default:
		return string(sd.Kind)
	}
}

// Transform places a local-space outline into board space. The order of
// application is fixed: flip mirrors local x, then the outline rotates
// about its anchor, then translates to (X, Y).
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees, [0, 360)
	Flip     bool    `json:"flip,omitempty"`
}

// Piece is one placed instance of a catalog shape. The local Outline is
// anchored so its rotation reference point sits at the origin; Transform
// carries the board-space position of that anchor.
type Piece struct {
	ID         string    `json:"id"`
	ShapeID    string    `json:"shape_id"`
	Def        ShapeDef  `json:"-"`
	Outline    Outline   `json:"-"`
	Transform  Transform `json:"transform"`
	Z          int       `json:"z"`
	ColorIndex int       `json:"color_index"`
}

// NewPiece materializes a catalog shape with its resolved local outline.
func NewPiece(def ShapeDef, outline Outline) *Piece {
	return &Piece{
		ID:      uuid.New().String()[:8],
		ShapeID: def.ID,
		Def:     def,
		Outline: outline,
	}
}

// BoardKind identifies the supported board geometries.
type BoardKind string

const (
	BoardRect           BoardKind = "rect"
	BoardRectQuarterCut BoardKind = "rect_with_quarter_round_cut"
	BoardPolygon        BoardKind = "polygon"
)

// Board is the containment region pieces must stay inside. Outline is the
// resolved outer loop used for containment tests; Loops carries every
// resolved loop for drawing (a polygon board may have more than one).
// Immutable after load.
type Board struct {
	Kind      BoardKind         `json:"type"`
	W         float64           `json:"w,omitempty"`
	H         float64           `json:"h,omitempty"`
	R         float64           `json:"r,omitempty"`
	CutCorner string            `json:"cut_corner,omitempty"`
	Polygons  [][]PolygonVertex `json:"polygons,omitempty"`

	Outline Outline   `json:"-"`
	Loops   []Outline `json:"-"`
}

// Puzzle owns a board and the pieces materialized onto it.
type Puzzle struct {
	Units  string   `json:"units,omitempty"`
	Board  Board    `json:"board"`
	Pieces []*Piece `json:"pieces"`
	NoteEN string   `json:"note_en,omitempty"`
	NoteZH string   `json:"note_zh,omitempty"`
}

// MovementMode is the per-puzzle movement restriction state.
type MovementMode int

const (
	// ModeFree commits any proposed transform unconditionally.
	ModeFree MovementMode = iota
	// ModeRestricted validates containment and overlap before commit.
	ModeRestricted
)

func (m MovementMode) String() string {
	if m == ModeRestricted {
		return "Restricted"
	}
	return "Free"
}
