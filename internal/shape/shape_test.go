package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

func TestResolve_AllKindsClosedCCW(t *testing.T) {
	defs := []model.ShapeDef{
		{ID: "rect_30x30", Kind: model.KindRect, W: 30, H: 30},
		{ID: "tri_eq_40", Kind: model.KindEquilateralTriangle, Side: 40},
		{ID: "tri_right", Kind: model.KindRightTriangle, A: 30, B: 40},
		{ID: "hex_20", Kind: model.KindRegularPolygon, N: 6, Side: 20},
		{ID: "circle_d30", Kind: model.KindCircle, D: 30},
		{ID: "trap", Kind: model.KindIsoscelesTrapezoid, BaseBottom: 60, BaseTop: 30, Height: 25},
		{ID: "para", Kind: model.KindParallelogram, Base: 40, Height: 20, OffsetTop: 10},
		{ID: "poly", Kind: model.KindPolygon, Points: []model.PolygonVertex{
			{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 30}, {X: 0, Y: 30},
		}},
	}
	for _, def := range defs {
		o, err := Resolve(def)
		require.NoError(t, err, def.ID)
		require.GreaterOrEqual(t, len(o), 3, def.ID)
		assert.Greater(t, o.SignedArea(), 0.0, "%s must be CCW with positive area", def.ID)
	}
}

func TestResolve_RectDimensionsAndCentering(t *testing.T) {
	o, err := Resolve(model.ShapeDef{ID: "r", Kind: model.KindRect, W: 30, H: 20})
	require.NoError(t, err)
	require.Len(t, o, 4)

	b := o.Bounds()
	assert.InDelta(t, 30, b.Width(), 1e-9)
	assert.InDelta(t, 20, b.Height(), 1e-9)

	c := o.Centroid()
	assert.InDelta(t, 0, c.X, 1e-9)
	assert.InDelta(t, 0, c.Y, 1e-9)
}

func TestResolve_CircleArea(t *testing.T) {
	o, err := Resolve(model.ShapeDef{ID: "c", Kind: model.KindCircle, D: 30})
	require.NoError(t, err)
	assert.Len(t, o, 48)
	// 48-gon area stays within 0.3% of the true circle
	assert.InDelta(t, math.Pi*15*15, o.Area(), math.Pi*15*15*0.003)

	// r is accepted where d is absent
	alt, err := Resolve(model.ShapeDef{ID: "c2", Kind: model.KindCircle, R: 15})
	require.NoError(t, err)
	assert.InDelta(t, o.Area(), alt.Area(), 1e-9)
}

func TestResolve_RegularPolygonSideLength(t *testing.T) {
	o, err := Resolve(model.ShapeDef{ID: "hex", Kind: model.KindRegularPolygon, N: 6, Side: 20})
	require.NoError(t, err)
	require.Len(t, o, 6)
	for i := range o {
		j := (i + 1) % 6
		d := math.Hypot(o[j].X-o[i].X, o[j].Y-o[i].Y)
		assert.InDelta(t, 20, d, 1e-9)
	}
}

func TestResolve_TrapezoidSymmetric(t *testing.T) {
	o, err := Resolve(model.ShapeDef{
		ID: "trap", Kind: model.KindIsoscelesTrapezoid,
		BaseBottom: 60, BaseTop: 30, Height: 25,
	})
	require.NoError(t, err)
	require.Len(t, o, 4)
	assert.InDelta(t, (60.0+30.0)/2*25, o.Area(), 1e-9)
	// Symmetric about x=0 after centering
	b := o.Bounds()
	assert.InDelta(t, -b.Min.X, b.Max.X, 1e-9)
}

func TestResolve_PolygonWithRoundedCorner(t *testing.T) {
	sharp, err := Resolve(model.ShapeDef{ID: "p", Kind: model.KindPolygon,
		Points: []model.PolygonVertex{
			{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40},
		}})
	require.NoError(t, err)

	rounded, err := Resolve(model.ShapeDef{ID: "pr", Kind: model.KindPolygon,
		Points: []model.PolygonVertex{
			{X: 0, Y: 0, Round: 10}, {X: 40, Y: 0, Round: 10},
			{X: 40, Y: 40, Round: 10}, {X: 0, Y: 40, Round: 10},
		}})
	require.NoError(t, err)

	assert.Greater(t, len(rounded), len(sharp))
	// Each rounded corner trims r^2 - pi r^2 / 4 of area
	want := 40.0*40 - 4*(10*10-math.Pi*10*10/4)
	assert.InDelta(t, want, rounded.Area(), want*0.01)
}

func TestResolve_ClockwiseInputReversed(t *testing.T) {
	o, err := Resolve(model.ShapeDef{ID: "cw", Kind: model.KindPolygon,
		Points: []model.PolygonVertex{
			{X: 0, Y: 0}, {X: 0, Y: 30}, {X: 30, Y: 30}, {X: 30, Y: 0},
		}})
	require.NoError(t, err)
	assert.Greater(t, o.SignedArea(), 0.0)
}

func TestResolve_Errors(t *testing.T) {
	cases := []struct {
		name string
		def  model.ShapeDef
		want error
	}{
		{"unknown kind", model.ShapeDef{ID: "x", Kind: "blob"}, model.ErrInvalidShapeKind},
		{"zero width", model.ShapeDef{ID: "x", Kind: model.KindRect, W: 0, H: 10}, model.ErrInvalidParameter},
		{"negative side", model.ShapeDef{ID: "x", Kind: model.KindEquilateralTriangle, Side: -1}, model.ErrInvalidParameter},
		{"ngon too few", model.ShapeDef{ID: "x", Kind: model.KindRegularPolygon, N: 2, Side: 10}, model.ErrInvalidParameter},
		{"circle no size", model.ShapeDef{ID: "x", Kind: model.KindCircle}, model.ErrInvalidParameter},
		{"polygon too few", model.ShapeDef{ID: "x", Kind: model.KindPolygon,
			Points: []model.PolygonVertex{{X: 0, Y: 0}, {X: 1, Y: 1}}}, model.ErrInvalidParameter},
		{"negative round", model.ShapeDef{ID: "x", Kind: model.KindPolygon,
			Points: []model.PolygonVertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10, Round: -2}}}, model.ErrInvalidParameter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestResolveBoard_Rect(t *testing.T) {
	b := model.Board{Kind: model.BoardRect, W: 113, H: 123}
	require.NoError(t, ResolveBoard(&b))
	require.Len(t, b.Outline, 4)
	assert.InDelta(t, 113*123, b.Outline.Area(), 1e-9)
	assert.Len(t, b.Loops, 1)
}

func TestResolveBoard_QuarterCut(t *testing.T) {
	b := model.Board{Kind: model.BoardRectQuarterCut, W: 100, H: 80, R: 20, CutCorner: "topright"}
	require.NoError(t, ResolveBoard(&b))
	// Full rect minus the corner square plus the quarter disc
	want := 100.0*80 - 20*20 + math.Pi*20*20/4
	assert.InDelta(t, want, b.Outline.Area(), want*0.005)
	assert.Greater(t, len(b.Outline), 20)
}

func TestResolveBoard_PolygonPicksLargestLoop(t *testing.T) {
	b := model.Board{Kind: model.BoardPolygon, Polygons: [][]model.PolygonVertex{
		{{X: 200, Y: 200}, {X: 210, Y: 200}, {X: 210, Y: 210}, {X: 200, Y: 210}},
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
	}}
	require.NoError(t, ResolveBoard(&b))
	assert.Len(t, b.Loops, 2)
	assert.InDelta(t, 100*100, b.Outline.Area(), 1e-9)
}

func TestResolveBoard_Errors(t *testing.T) {
	bad := model.Board{Kind: "oval"}
	err := ResolveBoard(&bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidBoardKind))

	flat := model.Board{Kind: model.BoardRect, W: 0, H: 10}
	assert.True(t, errors.Is(ResolveBoard(&flat), model.ErrInvalidParameter))

	empty := model.Board{Kind: model.BoardPolygon}
	assert.True(t, errors.Is(ResolveBoard(&empty), model.ErrInvalidParameter))
}

func TestBoardLabelLines(t *testing.T) {
	rect := model.Board{Kind: model.BoardRect, W: 113, H: 123}
	assert.Equal(t, []string{"113 x 123 mm"}, BoardLabelLines(rect, "en"))

	cut := model.Board{Kind: model.BoardRectQuarterCut, W: 100, H: 80, R: 20}
	assert.Equal(t, []string{"100 x 80 mm", "corner R20 mm"}, BoardLabelLines(cut, "en"))
	assert.Equal(t, []string{"100 x 80 mm", "圆角 R20 mm"}, BoardLabelLines(cut, "zh"))
}
