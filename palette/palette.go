// Package palette implements the ordered brand palette and the algorithms
// that produce it: style-variable prioritization, screenshot hue binning,
// grayscale filtering and the two merge strategies.
//
// A Palette is an ordered list of lowercase "#rrggbb" strings. Invariants:
// entries are unique case-insensitively, length never exceeds MaxColors, and
// order encodes confidence (index 0 is the most trusted brand color).
package palette

import "strings"

// MaxColors caps every produced palette.
const MaxColors = 8

// Palette is an ordered, deduplicated list of hex colors.
type Palette []string

// VisualColor is one dominant hue-bin representative from a screenshot or
// image, with its relative pixel weight.
type VisualColor struct {
	Hex  string
	Area int
}

// appendUnique adds hex to dst when it is not already present
// (case-insensitive) and the palette is below MaxColors. It returns dst.
func appendUnique(dst Palette, seen map[string]bool, hex string) Palette {
	if len(dst) >= MaxColors {
		return dst
	}
	key := strings.ToLower(hex)
	if seen[key] {
		return dst
	}
	seen[key] = true
	return append(dst, key)
}
