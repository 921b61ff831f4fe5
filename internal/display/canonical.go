package display

import "slices"

// CanonicalizeModes returns a new slice holding raw sorted best-first
// (descending bpp, then width, then height) with duplicate
// width/height/bpp triples removed. raw is not modified.
func CanonicalizeModes(raw []VideoMode) []VideoMode {
	modes := make([]VideoMode, 0, len(raw))
	for _, m := range raw {
		m.ScreenIndex = 0
		modes = append(modes, m)
	}

	slices.SortStableFunc(modes, func(a, b VideoMode) int {
		return b.Compare(a)
	})

	return slices.CompactFunc(modes, func(a, b VideoMode) bool {
		return a.Compare(b) == 0
	})
}
