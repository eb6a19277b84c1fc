package colorspace

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL returns the hue (degrees), saturation and lightness (0..1) of a
// "#rrggbb" value. ok is false when the hex does not parse.
func HSL(hex string) (h, s, l float64, ok bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	h, s, l = c.Hsl()
	return h, s, l, true
}

// RelativeLuminance computes WCAG relative luminance (0 = black, 1 = white)
// for a "#rrggbb" value. Unparseable input yields 0.
func RelativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

// ContrastRatio computes the WCAG contrast ratio between two hex colors.
func ContrastRatio(a, b string) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Triplet formats hue/saturation/lightness as the `"H S% L%"` form the theme
// roles use. Values are rounded to integers.
func Triplet(h, s, l float64) string {
	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100)))
}

// TripletFromHex is Triplet applied to a parsed hex color. Unparseable input
// maps to "0 0% 0%".
func TripletFromHex(hex string) string {
	h, s, l, ok := HSL(hex)
	if !ok {
		return "0 0% 0%"
	}
	return Triplet(h, s, l)
}

func linear(ch float64) float64 {
	if ch <= 0.03928 {
		return ch / 12.92
	}
	return math.Pow((ch+0.055)/1.055, 2.4)
}
