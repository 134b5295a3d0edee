package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/ShapeBoard/internal/blueprint"
)

// WriteSVG emits a blueprint description as an SVG document. The geometry
// carries the document's default stroke; rules and labels override it
// per element.
func WriteSVG(w io.Writer, d *blueprint.Description) error {
	p := func(format string, a ...interface{}) error {
		_, err := fmt.Fprintf(w, format, a...)
		return err
	}
	if err := p("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\""+
		" stroke=\"#333\" fill=\"none\" stroke-width=\"1.8\" stroke-linejoin=\"round\""+
		" font-family=\"sans-serif\">\n",
		d.WidthPx, d.HeightPx, d.WidthPx, d.HeightPx); err != nil {
		return err
	}
	if err := p("<rect x=\"0\" y=\"0\" width=\"100%%\" height=\"100%%\" fill=\"#ffffff\"/>\n"); err != nil {
		return err
	}
	for _, r := range d.Rules {
		if err := p("<path d=\"M %.2f %.2f L %.2f %.2f\" stroke=\"#ddd\" stroke-width=\"1\"/>\n",
			r.X1, r.Y1, r.X2, r.Y2); err != nil {
			return err
		}
	}
	for _, o := range d.Outlines {
		if len(o) == 0 {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "M %.2f %.2f", o[0].X, o[0].Y)
		for _, pt := range o[1:] {
			fmt.Fprintf(&b, " L %.2f %.2f", pt.X, pt.Y)
		}
		b.WriteString(" Z")
		if err := p("<path d=\"%s\"/>\n", b.String()); err != nil {
			return err
		}
	}
	for _, l := range d.Labels {
		anchor := ""
		if l.Centered {
			anchor = " text-anchor=\"middle\""
		}
		if err := p("<text x=\"%.2f\" y=\"%.2f\"%s fill=\"#333\" font-size=\"%.0f\">%s</text>\n",
			l.X, l.Y, anchor, l.SizePx, svgEscape(l.Text)); err != nil {
			return err
		}
	}
	return p("</svg>\n")
}

// ExportSVG writes the blueprint as an SVG file.
func ExportSVG(path string, d *blueprint.Description) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteSVG(f, d); err != nil {
		return err
	}
	expLog.Info().Str("path", path).Msg("blueprint svg written")
	return nil
}

func svgEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}
