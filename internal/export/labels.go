package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PieceID  string  `json:"piece_id"`
	ShapeID  string  `json:"shape_id"`
	Label    string  `json:"label"`
	X        float64 `json:"x_mm"`
	Y        float64 `json:"y_mm"`
	Rotation float64 `json:"rotation_deg"`
	Flip     bool    `json:"flip"`
	Color    string  `json:"color"`
}

// Label layout constants for Avery 5160-compatible sheets (3 columns,
// 10 rows per US Letter page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts one label per piece, in piece order.
func CollectLabelInfos(pz *model.Puzzle, lang string) []LabelInfo {
	var labels []LabelInfo
	for _, p := range pz.Pieces {
		labels = append(labels, LabelInfo{
			PieceID:  p.ID,
			ShapeID:  p.ShapeID,
			Label:    p.Def.Label(lang),
			X:        p.Transform.X,
			Y:        p.Transform.Y,
			Rotation: p.Transform.Rotation,
			Flip:     p.Transform.Flip,
			Color:    model.PaletteNames[p.ColorIndex%len(model.PaletteNames)],
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for all pieces. Each
// label carries the shape label, placement, and a QR code encoding the
// piece metadata as JSON.
func ExportLabels(path string, pz *model.Puzzle, lang string) error {
	labels := CollectLabelInfos(pz, lang)
	if len(labels) == 0 {
		return fmt.Errorf("%w: no pieces to label", model.ErrEmptyPuzzle)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight
		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PieceID, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return err
	}
	expLog.Info().Str("path", path).Int("labels", len(labels)).Msg("piece labels written")
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.PieceID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	title := info.Label
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	place := fmt.Sprintf("@ (%.0f, %.0f) mm, %.0f\xb0", info.X, info.Y, info.Rotation)
	pdf.CellFormat(textW, 3.5, place, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%s / %s", info.ShapeID, info.Color), "", 1, "L", false, 0, "")

	if info.Flip {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Mirrored", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
