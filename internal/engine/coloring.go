package engine

import "github.com/piwi3910/ShapeBoard/internal/model"

// AssignColors gives every piece a stable palette index. Pieces are grouped
// by shape id in first-seen order, the groups are concatenated, and the
// global position modulo the palette size becomes the color index. The
// assignment depends only on load order, so later z-order changes or
// re-renders never recolor a piece.
func AssignColors(pieces []*model.Piece) {
	groupOrder := make([]string, 0, len(pieces))
	groups := make(map[string][]*model.Piece)
	for _, p := range pieces {
		key := p.ShapeID
		if key == "" {
			key = p.Def.Signature()
		}
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], p)
	}
	idx := 0
	for _, key := range groupOrder {
		for _, p := range groups[key] {
			p.ColorIndex = idx % len(model.Palette)
			idx++
		}
	}
}
