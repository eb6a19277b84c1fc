package palette

import "github.com/hazyhaar/tinge/colorspace"

const (
	// DefaultSaturationCutoff is the saturation below which a visual color is
	// treated as grayscale. Tunable per deployment via FilterGrayscale's
	// cutoff argument.
	DefaultSaturationCutoff = 0.12

	// Lightness extremes count as near-white/near-black regardless of
	// saturation: huge page backgrounds would otherwise dominate by area
	// without carrying brand identity.
	minLightness = 0.08
	maxLightness = 0.92
)

// FilterGrayscale removes near-neutral entries from a visual color list.
// A cutoff <= 0 selects DefaultSaturationCutoff. Relative order is preserved.
func FilterGrayscale(colors []VisualColor, cutoff float64) []VisualColor {
	if cutoff <= 0 {
		cutoff = DefaultSaturationCutoff
	}

	out := make([]VisualColor, 0, len(colors))
	for _, c := range colors {
		_, s, l, ok := colorspace.HSL(c.Hex)
		if !ok {
			continue
		}
		if s < cutoff || l < minLightness || l > maxLightness {
			continue
		}
		out = append(out, c)
	}
	return out
}
