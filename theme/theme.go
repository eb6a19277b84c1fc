// Package theme synthesizes a complete, contrast-safe UI theme from an
// ordered brand palette.
//
// The neutral roles are fixed constants independent of how saturated or dark
// the extracted brand color is: only primary and primary-foreground derive
// from the palette, so the result is always legible no matter how noisy the
// extraction was.
package theme

import (
	"github.com/hazyhaar/tinge/colorspace"
	"github.com/hazyhaar/tinge/palette"
)

// Colors holds the ten semantic theme roles as "H S% L%" triplets.
// Every field is always populated, even when synthesized from an empty
// palette.
type Colors struct {
	Background        string `json:"background"`
	Foreground        string `json:"foreground"`
	Primary           string `json:"primary"`
	PrimaryForeground string `json:"primary-foreground"`
	Muted             string `json:"muted"`
	MutedForeground   string `json:"muted-foreground"`
	Border            string `json:"border"`
	Input             string `json:"input"`
	Card              string `json:"card"`
	CardForeground    string `json:"card-foreground"`
}

const (
	// defaultPrimary is the neutral brand color used when the palette is
	// empty (nothing extractable from the page or image).
	defaultPrimary = "#475569"

	// primaryLumThreshold decides whether text on the primary color is
	// near-black or near-white. 0.5 relative luminance keeps at least ~4.5:1
	// contrast against both foreground constants.
	primaryLumThreshold = 0.5

	// Neutral base roles for a light UI.
	nearWhite       = "210 40% 98%"
	nearBlack       = "222 47% 11%"
	background      = "0 0% 100%"
	foreground      = nearBlack
	muted           = "210 40% 96%"
	mutedForeground = "215 16% 47%"
	border          = "214 32% 91%"
	input           = border
	card            = background
	cardForeground  = foreground
)

// Synthesize turns an ordered palette into the ten theme roles. The primary
// brand color is palette[0]; an empty palette falls back to a fixed neutral.
func Synthesize(p palette.Palette) Colors {
	primary := defaultPrimary
	if len(p) > 0 {
		if hex, ok := colorspace.Normalize(p[0]); ok {
			primary = hex
		}
	}

	primaryFG := nearWhite
	if colorspace.RelativeLuminance(primary) > primaryLumThreshold {
		primaryFG = nearBlack
	}

	return Colors{
		Background:        background,
		Foreground:        foreground,
		Primary:           colorspace.TripletFromHex(primary),
		PrimaryForeground: primaryFG,
		Muted:             muted,
		MutedForeground:   mutedForeground,
		Border:            border,
		Input:             input,
		Card:              card,
		CardForeground:    cardForeground,
	}
}
