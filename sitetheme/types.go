package sitetheme

import (
	"github.com/hazyhaar/tinge/colorspace"
	"github.com/hazyhaar/tinge/palette"
	"github.com/hazyhaar/tinge/theme"
)

// Source records which merge strategy actually produced the palette.
type Source string

const (
	// SourceVisionFirst: the screenshot signal was strong enough (two or
	// more surviving visual colors) to outrank declared variables.
	SourceVisionFirst Source = "vision-first"

	// SourceFallbackDOM: the visual signal was too weak or failed, so
	// style variables enriched by DOM-correlated colors were used.
	SourceFallbackDOM Source = "fallback-dom"
)

// StyleVars is the best-effort result of reading declared custom properties
// from the rendered root element. Found is false both when no variables
// exist and when the in-page inspection itself failed.
type StyleVars struct {
	Found bool
	Vars  []colorspace.Declared
}

// DOMColors holds the effective rendered colors of the five fixed semantic
// categories, each deduplicated and capped at five normalized hex entries.
// An empty category is legitimate, not an error.
type DOMColors struct {
	Logo       []string
	CTA        []string
	Navigation []string
	Headings   []string
	Accent     []string
}

// Result is the outcome of one website extraction.
type Result struct {
	Palette palette.Palette
	Theme   theme.Colors
	Source  Source
}
