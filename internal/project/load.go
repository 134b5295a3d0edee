package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/piwi3910/ShapeBoard/internal/model"
	"github.com/piwi3910/ShapeBoard/internal/shape"
)

// Initial grid placement for counts puzzles, in mm.
const (
	placeMargin = 10.0
	placeGap    = 5.0
)

// puzzleFile is the wire form shared by the counts and pieces variants.
// Exactly one of Counts and Pieces is expected to be present.
type puzzleFile struct {
	Units      string         `json:"units,omitempty"`
	Board      model.Board    `json:"board"`
	Counts     map[string]int `json:"counts,omitempty"`
	Pieces     []pieceEntry   `json:"pieces,omitempty"`
	ShapesFile string         `json:"shapes_file,omitempty"`
	NoteEN     string         `json:"note_en,omitempty"`
	NoteZH     string         `json:"note_zh,omitempty"`
}

// pieceEntry is one placed piece in the full-pieces form, as written by
// SavePuzzle when resuming an interactive session.
type pieceEntry struct {
	ShapeID  string     `json:"shape_id"`
	At       [2]float64 `json:"at"`
	Anchor   string     `json:"anchor,omitempty"` // "center" or "bottomleft" (default)
	Rotation float64    `json:"rotation,omitempty"`
	Flip     bool       `json:"flip,omitempty"`
	Z        int        `json:"z,omitempty"`
}

// LoadPuzzle materializes a puzzle definition against a catalog. Counts
// form definitions expand into default-positioned pieces; pieces form
// definitions restore saved transforms. A failure here is fatal for this
// puzzle only and leaves no partial state behind.
func LoadPuzzle(data []byte, cat *Catalog) (*model.Puzzle, error) {
	var pf puzzleFile
	if err := sonic.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: puzzle: %v", model.ErrMalformedDefinition, err)
	}
	if err := shape.ResolveBoard(&pf.Board); err != nil {
		return nil, err
	}

	pz := &model.Puzzle{
		Units:  pf.Units,
		Board:  pf.Board,
		NoteEN: pf.NoteEN,
		NoteZH: pf.NoteZH,
	}
	if pz.Units == "" {
		pz.Units = "mm"
	}

	var err error
	switch {
	case len(pf.Pieces) > 0:
		pz.Pieces, err = materializePieces(pf.Pieces, cat)
	case len(pf.Counts) > 0:
		pz.Pieces, err = materializeCounts(pf.Counts, cat, pf.Board)
	default:
		// An empty puzzle is loadable; exports reject it later.
	}
	if err != nil {
		return nil, err
	}
	prjLog.Info().Int("pieces", len(pz.Pieces)).Str("board", string(pz.Board.Kind)).Msg("puzzle loaded")
	return pz, nil
}

// LoadPuzzleFile reads a puzzle file, resolving a shapes_file reference
// relative to the puzzle's directory when the caller passes no catalog.
func LoadPuzzleFile(path string, cat *Catalog) (*model.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		var pf puzzleFile
		if err := sonic.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("%w: puzzle: %v", model.ErrMalformedDefinition, err)
		}
		shapesPath := pf.ShapesFile
		if shapesPath == "" {
			shapesPath = "shapes.json"
		}
		if !filepath.IsAbs(shapesPath) {
			shapesPath = filepath.Join(filepath.Dir(path), shapesPath)
		}
		cat, err = LoadCatalogFile(shapesPath)
		if err != nil {
			return nil, fmt.Errorf("shapes file %s: %w", shapesPath, err)
		}
	}
	return LoadPuzzle(data, cat)
}

// materializeCounts expands a counts map into default-positioned pieces,
// iterating the catalog in file order so materialization (and therefore
// coloring) is deterministic. Unknown ids are rejected before any piece is
// placed.
func materializeCounts(counts map[string]int, cat *Catalog, board model.Board) ([]*model.Piece, error) {
	for id, n := range counts {
		if _, ok := cat.Get(id); !ok {
			return nil, fmt.Errorf("%w: counts entry %q", model.ErrUnknownShapeReference, id)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: count for %q must be > 0, got %d",
				model.ErrInvalidParameter, id, n)
		}
	}

	var pieces []*model.Piece
	for _, sd := range cat.Shapes {
		n := counts[sd.ID]
		if n == 0 {
			continue
		}
		outline, err := shape.Resolve(sd)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			pieces = append(pieces, model.NewPiece(sd, outline))
		}
	}
	placeGrid(pieces, board)
	for i, p := range pieces {
		p.Z = i
	}
	return pieces, nil
}

// placeGrid lays pieces out in rows with a fixed margin and gap, wrapping
// at the board width, each piece positioned by its bounding box.
func placeGrid(pieces []*model.Piece, board model.Board) {
	maxW := board.Outline.Bounds().Width()
	if maxW <= 0 {
		maxW = 200
	}
	x, y := placeMargin, placeMargin
	rowH := 0.0
	for _, p := range pieces {
		b := p.Outline.Bounds()
		w, h := b.Width(), b.Height()
		if x+w > maxW-placeMargin && x > placeMargin {
			x = placeMargin
			y += rowH + placeGap
			rowH = 0
		}
		// Local outlines are anchored at the centroid; shift so the
		// bounding box's lower-left corner lands on the grid slot.
		p.Transform = model.Transform{X: x - b.Min.X, Y: y - b.Min.Y}
		x += w + placeGap
		if h > rowH {
			rowH = h
		}
	}
}

// materializePieces restores explicitly placed pieces from a saved session.
func materializePieces(entries []pieceEntry, cat *Catalog) ([]*model.Piece, error) {
	pieces := make([]*model.Piece, 0, len(entries))
	for i, e := range entries {
		sd, ok := cat.Get(e.ShapeID)
		if !ok {
			return nil, fmt.Errorf("%w: pieces entry %d references %q",
				model.ErrUnknownShapeReference, i, e.ShapeID)
		}
		outline, err := shape.Resolve(sd)
		if err != nil {
			return nil, err
		}
		p := model.NewPiece(sd, outline)
		p.Transform = model.Transform{
			X:        e.At[0],
			Y:        e.At[1],
			Rotation: e.Rotation,
			Flip:     e.Flip,
		}
		if e.Anchor != "center" {
			// File position is the outline's lower-left bounding corner;
			// translate to the centroid anchor the engine rotates about.
			b := outline.Bounds()
			p.Transform.X = e.At[0] - b.Min.X
			p.Transform.Y = e.At[1] - b.Min.Y
		}
		p.Z = e.Z
		if e.Z == 0 {
			p.Z = i
		}
		pieces = append(pieces, p)
	}
	return pieces, nil
}
