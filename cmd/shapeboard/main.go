// ShapeBoard — geometric puzzle engine and blueprint exporter
//
// Loads a puzzle definition (board + pieces, or board + per-shape counts
// against a shapes catalog) and exports a printable blueprint or the
// session state in several formats.
//
// Build:
//
//	go build -o shapeboard ./cmd/shapeboard
//
// Examples:
//
//	shapeboard -puzzle puzzle/k11.json -out blueprint.png -px-per-mm 6
//	shapeboard -puzzle puzzle/k11.json -shapes shapes.json -format pdf -out blueprint.pdf
//	shapeboard -puzzle saved.json -format dxf -out pieces.dxf
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/ShapeBoard/internal/blueprint"
	"github.com/piwi3910/ShapeBoard/internal/engine"
	"github.com/piwi3910/ShapeBoard/internal/export"
	"github.com/piwi3910/ShapeBoard/internal/project"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	puzzlePath := flag.String("puzzle", "", "puzzle definition JSON (required)")
	shapesPath := flag.String("shapes", "", "shapes catalog JSON (defaults to the puzzle's shapes_file)")
	outPath := flag.String("out", "", "output file (default blueprint.<format>)")
	format := flag.String("format", "", "png, svg, pdf, dxf, xlsx or labels (default from -out extension, else png)")
	pxPerMm := flag.Float64("px-per-mm", 6, "raster scale for blueprint output")
	lang := flag.String("lang", "en", "label language: en or zh")
	fontPath := flag.String("font", "", "TTF font for PNG labels (labels are skipped without one)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *puzzlePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f := strings.ToLower(*format)
	if f == "" {
		if *outPath != "" {
			f = strings.TrimPrefix(filepath.Ext(*outPath), ".")
		}
		if f == "" {
			f = "png"
		}
	}
	out := *outPath
	if out == "" {
		out = "blueprint." + f
		if f == "labels" {
			out = "labels.pdf"
		}
	}

	var cat *project.Catalog
	if *shapesPath != "" {
		var err error
		cat, err = project.LoadCatalogFile(*shapesPath)
		if err != nil {
			fatal("loading shapes catalog", err)
		}
	}
	pz, err := project.LoadPuzzleFile(*puzzlePath, cat)
	if err != nil {
		fatal("loading puzzle", err)
	}
	session := engine.NewSession(pz)

	switch f {
	case "png", "svg", "pdf":
		desc, err := blueprint.Layout(pz, *pxPerMm, *lang)
		if err != nil {
			fatal("laying out blueprint", err)
		}
		switch f {
		case "png":
			err = export.ExportPNG(out, desc, *fontPath)
		case "svg":
			err = export.ExportSVG(out, desc)
		case "pdf":
			err = export.ExportPDF(out, desc)
		}
		if err != nil {
			fatal("writing blueprint", err)
		}
	case "dxf":
		if err := export.ExportDXF(out, session.Puzzle()); err != nil {
			fatal("writing dxf", err)
		}
	case "xlsx":
		if err := export.ExportXLSX(out, session.Puzzle(), *lang); err != nil {
			fatal("writing parts list", err)
		}
	case "labels":
		if err := export.ExportLabels(out, session.Puzzle(), *lang); err != nil {
			fatal("writing labels", err)
		}
	default:
		fatal("unsupported format", fmt.Errorf("%q", f))
	}

	fmt.Println(out)
}

func fatal(what string, err error) {
	log.Error().Err(err).Msg(what)
	os.Exit(1)
}
