package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// ExportXLSX writes a parts-list spreadsheet: one row per distinct shape
// with its label, kind, count and bounding dimensions, in the same
// first-seen group order the blueprint uses.
func ExportXLSX(path string, pz *model.Puzzle, lang string) error {
	if len(pz.Pieces) == 0 {
		return fmt.Errorf("%w: no pieces to list", model.ErrEmptyPuzzle)
	}

	type row struct {
		shapeID string
		label   string
		kind    model.ShapeKind
		count   int
		w, h    float64
	}
	index := make(map[string]int)
	var rows []row
	for _, p := range pz.Pieces {
		key := p.ShapeID
		if key == "" {
			key = p.Def.Signature()
		}
		if i, seen := index[key]; seen {
			rows[i].count++
			continue
		}
		b := p.Outline.Bounds()
		index[key] = len(rows)
		rows = append(rows, row{
			shapeID: p.ShapeID,
			label:   p.Def.Label(lang),
			kind:    p.Def.Kind,
			count:   1,
			w:       b.Width(),
			h:       b.Height(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{"Shape ID", "Label", "Kind", "Count", "Width (mm)", "Height (mm)"}
	for col, hdr := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, hdr); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []interface{}{r.shapeID, r.label, string(r.kind), r.count, r.w, r.h}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return err
	}
	expLog.Info().Str("path", path).Int("rows", len(rows)).Msg("parts list written")
	return nil
}
