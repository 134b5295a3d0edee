package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// SavePuzzle writes a session's puzzle to the full-pieces JSON form so it
// can be resumed later. Piece positions are written center-anchored, which
// round-trips exactly through LoadPuzzle. Parent directories are created
// if they do not exist.
func SavePuzzle(path string, pz *model.Puzzle) error {
	pf := puzzleFile{
		Units:  pz.Units,
		Board:  pz.Board,
		NoteEN: pz.NoteEN,
		NoteZH: pz.NoteZH,
	}
	for _, p := range pz.Pieces {
		pf.Pieces = append(pf.Pieces, pieceEntry{
			ShapeID:  p.ShapeID,
			At:       [2]float64{p.Transform.X, p.Transform.Y},
			Anchor:   "center",
			Rotation: p.Transform.Rotation,
			Flip:     p.Transform.Flip,
			Z:        p.Z,
		})
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return err
	}
	prjLog.Info().Str("path", path).Int("pieces", len(pf.Pieces)).Msg("puzzle saved")
	return os.WriteFile(path, data, 0644)
}
