package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/ShapeBoard/internal/engine"
	"github.com/piwi3910/ShapeBoard/internal/model"
)

// ExportDXF writes the current session state as a DXF drawing: the board
// loops on one layer, each piece's world-space outline on another. Useful
// for cutting physical piece sets.
func ExportDXF(path string, pz *model.Puzzle) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("BOARD", color.Red, table.LT_CONTINUOUS, true); err != nil {
		return err
	}
	for _, loop := range pz.Board.Loops {
		writeOutline(d, loop)
	}

	if _, err := d.AddLayer("PIECES", color.Green, table.LT_CONTINUOUS, true); err != nil {
		return err
	}
	for _, p := range pz.Pieces {
		writeOutline(d, engine.Apply(p.Outline, p.Transform))
	}

	if err := d.SaveAs(path); err != nil {
		return err
	}
	expLog.Info().Str("path", path).Int("pieces", len(pz.Pieces)).Msg("dxf written")
	return nil
}

func writeOutline(d *drawing.Drawing, o model.Outline) {
	n := len(o)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		_, _ = d.Line(o[i].X, o[i].Y, 0, o[j].X, o[j].Y, 0)
	}
}
