package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

const testShapes = `{
  "shapes": [
    {"id": "circle_d30", "type": "circle", "d": 30, "label_en": "Circle 30", "label_zh": "圆 30"},
    {"id": "rect_30x30", "type": "rect", "w": 30, "h": 30},
    {"id": "tri_eq_40", "type": "equilateral_triangle", "side": 40}
  ]
}`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := LoadCatalog([]byte(testShapes))
	require.NoError(t, err)
	return cat
}

func TestLoadCatalog(t *testing.T) {
	cat := testCatalog(t)
	assert.Len(t, cat.Shapes, 3)

	sd, ok := cat.Get("circle_d30")
	require.True(t, ok)
	assert.Equal(t, model.KindCircle, sd.Kind)
	assert.InDelta(t, 30, sd.D, 1e-9)

	_, ok = cat.Get("nope")
	assert.False(t, ok)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog([]byte(`{"shapes": [`))
	assert.True(t, errors.Is(err, model.ErrMalformedDefinition))

	_, err = LoadCatalog([]byte(`{"shapes": [{"type": "rect", "w": 1, "h": 1}]}`))
	assert.True(t, errors.Is(err, model.ErrMalformedDefinition), "missing id")

	_, err = LoadCatalog([]byte(`{"shapes": [
		{"id": "a", "type": "rect", "w": 1, "h": 1},
		{"id": "a", "type": "circle", "d": 2}
	]}`))
	assert.True(t, errors.Is(err, model.ErrMalformedDefinition), "duplicate id")
}

func TestLoadPuzzle_Counts(t *testing.T) {
	pz, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 113, "h": 123},
		"counts": {"circle_d30": 2, "rect_30x30": 1}
	}`), testCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, "mm", pz.Units)
	require.Len(t, pz.Pieces, 3)
	// Catalog file order, not map order: circles first
	assert.Equal(t, "circle_d30", pz.Pieces[0].ShapeID)
	assert.Equal(t, "circle_d30", pz.Pieces[1].ShapeID)
	assert.Equal(t, "rect_30x30", pz.Pieces[2].ShapeID)
	for i, p := range pz.Pieces {
		assert.Equal(t, i, p.Z)
		assert.NotEmpty(t, p.ID)
		assert.Len(t, p.Outline, 48, "piece %d outline", i)
	}
	assert.Len(t, pz.Pieces[2].Outline, 4)
}

func TestLoadPuzzle_CountsGridPlacement(t *testing.T) {
	pz, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 113, "h": 123},
		"counts": {"rect_30x30": 4}
	}`), testCatalog(t))
	require.NoError(t, err)
	require.Len(t, pz.Pieces, 4)

	// 30mm pieces with 10mm margin and 5mm gap: two per 113mm row
	b0 := pz.Pieces[0].Outline.Bounds()
	assert.InDelta(t, 10, pz.Pieces[0].Transform.X+b0.Min.X, 1e-9)
	assert.InDelta(t, 10, pz.Pieces[0].Transform.Y+b0.Min.Y, 1e-9)
	assert.InDelta(t, 45, pz.Pieces[1].Transform.X+b0.Min.X, 1e-9)
	// Third piece wraps to the next row
	assert.InDelta(t, 10, pz.Pieces[2].Transform.X+b0.Min.X, 1e-9)
	assert.InDelta(t, 45, pz.Pieces[2].Transform.Y+b0.Min.Y, 1e-9)
}

func TestLoadPuzzle_CountsErrors(t *testing.T) {
	_, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 100, "h": 100},
		"counts": {"ghost": 1}
	}`), testCatalog(t))
	assert.True(t, errors.Is(err, model.ErrUnknownShapeReference))

	_, err = LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 100, "h": 100},
		"counts": {"circle_d30": 0}
	}`), testCatalog(t))
	assert.True(t, errors.Is(err, model.ErrInvalidParameter))
}

func TestLoadPuzzle_Pieces(t *testing.T) {
	pz, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 113, "h": 123},
		"pieces": [
			{"shape_id": "circle_d30", "at": [50, 50], "anchor": "center", "rotation": 45},
			{"shape_id": "rect_30x30", "at": [10, 10]}
		]
	}`), testCatalog(t))
	require.NoError(t, err)
	require.Len(t, pz.Pieces, 2)

	assert.InDelta(t, 50, pz.Pieces[0].Transform.X, 1e-9)
	assert.InDelta(t, 45, pz.Pieces[0].Transform.Rotation, 1e-9)

	// Default anchor is the bounding box's lower-left corner; the stored
	// transform is converted to the centroid anchor.
	assert.InDelta(t, 25, pz.Pieces[1].Transform.X, 1e-9)
	assert.InDelta(t, 25, pz.Pieces[1].Transform.Y, 1e-9)
}

func TestLoadPuzzle_PiecesUnknownShape(t *testing.T) {
	_, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 100, "h": 100},
		"pieces": [{"shape_id": "ghost", "at": [0, 0]}]
	}`), testCatalog(t))
	assert.True(t, errors.Is(err, model.ErrUnknownShapeReference))
}

func TestLoadPuzzle_EmptyAndMalformed(t *testing.T) {
	pz, err := LoadPuzzle([]byte(`{"board": {"type": "rect", "w": 100, "h": 100}}`), testCatalog(t))
	require.NoError(t, err)
	assert.Empty(t, pz.Pieces)

	_, err = LoadPuzzle([]byte(`not json`), testCatalog(t))
	assert.True(t, errors.Is(err, model.ErrMalformedDefinition))

	_, err = LoadPuzzle([]byte(`{"board": {"type": "oval"}}`), testCatalog(t))
	assert.True(t, errors.Is(err, model.ErrInvalidBoardKind))
}

func TestLoadPuzzle_Notes(t *testing.T) {
	pz, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 100, "h": 100},
		"note_en": "cut slowly",
		"note_zh": "慢慢切"
	}`), testCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, "cut slowly", pz.NoteEN)
	assert.Equal(t, "慢慢切", pz.NoteZH)
}

func TestLoadPuzzleFile_ResolvesShapesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.json"), []byte(testShapes), 0644))
	puzzlePath := filepath.Join(dir, "puzzle.json")
	require.NoError(t, os.WriteFile(puzzlePath, []byte(`{
		"board": {"type": "rect", "w": 113, "h": 123},
		"counts": {"circle_d30": 1}
	}`), 0644))

	pz, err := LoadPuzzleFile(puzzlePath, nil)
	require.NoError(t, err)
	assert.Len(t, pz.Pieces, 1)
}

func TestSavePuzzle_RoundTrip(t *testing.T) {
	cat := testCatalog(t)
	pz, err := LoadPuzzle([]byte(`{
		"board": {"type": "rect", "w": 113, "h": 123},
		"pieces": [
			{"shape_id": "circle_d30", "at": [50, 50], "anchor": "center", "rotation": 30, "z": 2},
			{"shape_id": "tri_eq_40", "at": [80, 90], "anchor": "center", "flip": true, "z": 1}
		]
	}`), cat)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saves", "session.json")
	require.NoError(t, SavePuzzle(path, pz))

	back, err := LoadPuzzleFile(path, cat)
	require.NoError(t, err)
	require.Len(t, back.Pieces, 2)
	for i, p := range pz.Pieces {
		q := back.Pieces[i]
		assert.Equal(t, p.ShapeID, q.ShapeID)
		assert.InDelta(t, p.Transform.X, q.Transform.X, 1e-9)
		assert.InDelta(t, p.Transform.Y, q.Transform.Y, 1e-9)
		assert.InDelta(t, p.Transform.Rotation, q.Transform.Rotation, 1e-9)
		assert.Equal(t, p.Transform.Flip, q.Transform.Flip)
		assert.Equal(t, p.Z, q.Z)
	}
}
