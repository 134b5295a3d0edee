package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() Outline {
	return Outline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func TestOutline_Bounds(t *testing.T) {
	o := Outline{{X: -3, Y: 2}, {X: 7, Y: -1}, {X: 4, Y: 9}}
	b := o.Bounds()
	assert.InDelta(t, -3, b.Min.X, 1e-9)
	assert.InDelta(t, -1, b.Min.Y, 1e-9)
	assert.InDelta(t, 10, b.Width(), 1e-9)
	assert.InDelta(t, 10, b.Height(), 1e-9)

	assert.InDelta(t, 0, Outline{}.Bounds().Width(), 1e-9)
}

func TestOutline_SignedArea(t *testing.T) {
	ccw := unitSquare()
	assert.InDelta(t, 100, ccw.SignedArea(), 1e-9)

	cw := Outline{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	assert.InDelta(t, -100, cw.SignedArea(), 1e-9)
	assert.InDelta(t, 100, cw.Area(), 1e-9)
}

func TestOutline_Translate(t *testing.T) {
	o := unitSquare().Translate(5, -2)
	assert.InDelta(t, 5, o[0].X, 1e-9)
	assert.InDelta(t, -2, o[0].Y, 1e-9)
	assert.InDelta(t, 100, o.Area(), 1e-9, "translation preserves area")
}

func TestOutline_Centroid(t *testing.T) {
	c := unitSquare().Centroid()
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)

	// Degenerate outline falls back to the vertex average
	line := Outline{{X: 0, Y: 0}, {X: 10, Y: 0}}
	c = line.Centroid()
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 0, c.Y, 1e-9)
}

func TestShapeDef_Label(t *testing.T) {
	sd := ShapeDef{ID: "c", Kind: KindCircle, D: 30, LabelEN: "Circle", LabelZH: "圆"}
	assert.Equal(t, "Circle", sd.Label("en"))
	assert.Equal(t, "圆", sd.Label("zh"))

	sd.LabelZH = ""
	assert.Equal(t, "Circle", sd.Label("zh"), "missing zh falls back to en")

	sd.LabelEN = ""
	assert.Equal(t, "circle d=30 mm", sd.Label("en"), "unlabeled falls back to signature")
}

func TestShapeDef_Signature(t *testing.T) {
	assert.Equal(t, "rect 30x20 mm", ShapeDef{Kind: KindRect, W: 30, H: 20}.Signature())
	assert.Equal(t, "circle d=30 mm", ShapeDef{Kind: KindCircle, R: 15}.Signature())
	assert.Equal(t, "6-gon side=20 mm", ShapeDef{Kind: KindRegularPolygon, N: 6, Side: 20}.Signature())
}

func TestNewPiece(t *testing.T) {
	def := ShapeDef{ID: "sq", Kind: KindRect, W: 10, H: 10}
	p := NewPiece(def, unitSquare())
	assert.Len(t, p.ID, 8)
	assert.Equal(t, "sq", p.ShapeID)
	assert.Len(t, p.Outline, 4)

	q := NewPiece(def, unitSquare())
	assert.NotEqual(t, p.ID, q.ID)
}

func TestPolygonVertex_JSON(t *testing.T) {
	sharp := PolygonVertex{X: 1, Y: 2}
	data, err := json.Marshal(sharp)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(data))

	rounded := PolygonVertex{X: 1, Y: 2, Round: 3}
	data, err = json.Marshal(rounded)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(data))

	var v PolygonVertex
	require.NoError(t, json.Unmarshal([]byte(`[4,5]`), &v))
	assert.Equal(t, PolygonVertex{X: 4, Y: 5}, v)
	require.NoError(t, json.Unmarshal([]byte(`[4,5,6]`), &v))
	assert.Equal(t, PolygonVertex{X: 4, Y: 5, Round: 6}, v)
}

func TestPolygonVertex_JSONErrors(t *testing.T) {
	var v PolygonVertex
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"x":1}`), &v), ErrMalformedDefinition)
	assert.ErrorIs(t, json.Unmarshal([]byte(`[1]`), &v), ErrMalformedDefinition)
	assert.ErrorIs(t, json.Unmarshal([]byte(`[1,2,3,4]`), &v), ErrMalformedDefinition)
}

func TestPieceColor(t *testing.T) {
	assert.Equal(t, Palette[0], PieceColor(0))
	assert.Equal(t, Palette[1], PieceColor(len(Palette)+1))
	assert.Len(t, Palette, 8)
	assert.Len(t, PaletteNames, 8)
}
