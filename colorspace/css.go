// Package colorspace parses CSS color values and converts between the color
// representations the extraction pipeline works in (hex, RGB, HSL).
//
// Two entry points exist on purpose: HexFromCSS accepts only the formats the
// in-page extractors emit verbatim (#hex and rgb/rgba), while Normalize is a
// strict superset that additionally understands hsl/hsla. For every input
// HexFromCSS accepts, Normalize returns the identical value.
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Declared is one custom-property declaration in declaration order.
// Order matters: prioritization keeps unmatched names in their original
// relative position, which a map would destroy.
type Declared struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HexFromCSS parses a CSS color into lowercase "#rrggbb" form.
// Accepted: "#rrggbb", "#rgb" (nibble-expanded), "rgb(r,g,b)" and
// "rgba(r,g,b,a)" with the alpha discarded. Internal whitespace is tolerated.
// Named colors, hsl(), oklch() and malformed arity are rejected.
func HexFromCSS(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))

	if strings.HasPrefix(v, "#") {
		return hexLiteral(v[1:])
	}

	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		args, ok := callArgs(v)
		if !ok {
			return "", false
		}
		want := 3
		if strings.HasPrefix(v, "rgba(") {
			want = 4
		}
		if len(args) != want {
			return "", false
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 || n > 255 {
				return "", false
			}
			rgb[i] = uint8(n)
		}
		// args[3], when present, is the alpha channel and is discarded.
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), true
	}

	return "", false
}

// Normalize is the superset of HexFromCSS that also parses "hsl(h,s%,l%)"
// and "hsla(...)" (alpha discarded) via standard HSL-to-RGB conversion.
func Normalize(value string) (string, bool) {
	if hex, ok := HexFromCSS(value); ok {
		return hex, true
	}

	v := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(v, "hsl(") && !strings.HasPrefix(v, "hsla(") {
		return "", false
	}
	args, ok := callArgs(v)
	if !ok {
		return "", false
	}
	want := 3
	if strings.HasPrefix(v, "hsla(") {
		want = 4
	}
	if len(args) != want {
		return "", false
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return "", false
	}
	s, ok1 := percent(args[1])
	l, ok2 := percent(args[2])
	if !ok1 || !ok2 {
		return "", false
	}

	return colorful.Hsl(normHue(h), s, l).Clamped().Hex(), true
}

// hexLiteral expands "rgb" and passes "rrggbb" through, lowercased.
func hexLiteral(digits string) (string, bool) {
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", false
		}
	}
	switch len(digits) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return b.String(), true
	case 6:
		return "#" + digits, true
	default:
		return "", false
	}
}

// callArgs splits "fn(a, b, c)" into trimmed arguments.
func callArgs(v string) ([]string, bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return nil, false
	}
	inner := v[open+1 : len(v)-1]
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, false
		}
	}
	return parts, true
}

// percent parses "47%" into 0.47.
func percent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n / 100, true
}

func normHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
