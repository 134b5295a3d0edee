// Package export renders blueprint descriptions and session state to the
// supported output formats: PNG, SVG, PDF, DXF, a parts-list spreadsheet
// and QR-coded piece labels.
package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/ShapeBoard/internal/blueprint"
)

// expLog is the sub-logger for the export package, tagged module=export.
var expLog zerolog.Logger = log.With().Str("module", "export").Logger()

// RenderPNG rasterizes a blueprint description to PNG bytes. fontPath may
// name a TTF file for the labels; when empty or unloadable the geometry is
// still rendered and the labels are skipped.
func RenderPNG(d *blueprint.Description, fontPath string) ([]byte, error) {
	dc := gg.NewContext(d.WidthPx, d.HeightPx)
	dc.ClearWithColor(gg.White)

	dc.SetRGB(0.87, 0.87, 0.87)
	dc.SetLineWidth(1)
	for _, r := range d.Rules {
		dc.DrawLine(r.X1, r.Y1, r.X2, r.Y2)
		dc.Stroke()
	}

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1.8)
	for _, o := range d.Outlines {
		if len(o) == 0 {
			continue
		}
		dc.MoveTo(o[0].X, o[0].Y)
		for _, p := range o[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.Stroke()
	}

	if fontPath != "" {
		source, err := text.NewFontSourceFromFile(fontPath)
		if err != nil {
			expLog.Warn().Err(err).Str("font", fontPath).Msg("labels skipped, font unavailable")
		} else {
			defer func() { _ = source.Close() }()
			dc.SetRGB(0.2, 0.2, 0.2)
			for _, l := range d.Labels {
				dc.SetFont(source.Face(l.SizePx))
				if l.Centered {
					dc.DrawStringAnchored(l.Text, l.X, l.Y, 0.5, 0)
				} else {
					dc.DrawString(l.Text, l.X, l.Y)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPNG writes the rasterized blueprint to a file.
func ExportPNG(path string, d *blueprint.Description, fontPath string) error {
	data, err := RenderPNG(d, fontPath)
	if err != nil {
		return err
	}
	expLog.Info().Str("path", path).Int("w", d.WidthPx).Int("h", d.HeightPx).Msg("blueprint png written")
	return os.WriteFile(path, data, 0644)
}
