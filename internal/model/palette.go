package model

// Color is an RGB triple for piece fills.
type Color struct {
	R, G, B int
}

// Palette is the fixed 8-entry piece palette. Assignment cycles by index;
// the order is part of the contract and never changes.
var Palette = []Color{
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 152, B: 0},  // orange
	{R: 255, G: 235, B: 59}, // yellow
	{R: 76, G: 175, B: 80},  // green
	{R: 0, G: 188, B: 212},  // cyan
	{R: 33, G: 150, B: 243}, // blue
	{R: 156, G: 39, B: 176}, // purple
	{R: 233, G: 30, B: 99},  // pink
}

// PaletteNames matches Palette position for position.
var PaletteNames = []string{
	"red", "orange", "yellow", "green", "cyan", "blue", "purple", "pink",
}

// PieceColor returns the palette entry for a color index, cycling modulo
// the palette size.
func PieceColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
