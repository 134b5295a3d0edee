package export

import (
	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShapeBoard/internal/blueprint"
)

// mm to typographic points.
const ptPerMm = 72.0 / 25.4

// ExportPDF writes the blueprint to a single-page PDF sized exactly to the
// drawing. All description coordinates are pixels; they divide back to mm
// through the description's scale.
func ExportPDF(path string, d *blueprint.Description) error {
	s := d.PxPerMm
	wMm := float64(d.WidthPx) / s
	hMm := float64(d.HeightPx) / s

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetDrawColor(221, 221, 221)
	pdf.SetLineWidth(0.25)
	for _, r := range d.Rules {
		pdf.Line(r.X1/s, r.Y1/s, r.X2/s, r.Y2/s)
	}

	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.45)
	for _, o := range d.Outlines {
		if len(o) == 0 {
			continue
		}
		pts := make([]fpdf.PointType, len(o))
		for i, p := range o {
			pts[i] = fpdf.PointType{X: p.X / s, Y: p.Y / s}
		}
		pdf.Polygon(pts, "D")
	}

	pdf.SetTextColor(51, 51, 51)
	for _, l := range d.Labels {
		sizePt := l.SizePx / s * ptPerMm
		pdf.SetFont("Helvetica", "", sizePt)
		x := l.X / s
		if l.Centered {
			x -= pdf.GetStringWidth(l.Text) / 2
		}
		pdf.Text(x, l.Y/s, l.Text)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return err
	}
	expLog.Info().Str("path", path).Msg("blueprint pdf written")
	return nil
}
