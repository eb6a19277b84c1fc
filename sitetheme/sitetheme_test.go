package sitetheme

import (
	"errors"
	"testing"

	"github.com/hazyhaar/tinge/colorspace"
	"github.com/hazyhaar/tinge/palette"
)

func TestChooseSource(t *testing.T) {
	cases := []struct {
		count int
		err   error
		want  Source
	}{
		{0, nil, SourceFallbackDOM},
		{1, nil, SourceFallbackDOM},
		{2, nil, SourceVisionFirst},
		{8, nil, SourceVisionFirst},
		{2, errors.New("decode failed"), SourceFallbackDOM},
		{5, errors.New("screenshot failed"), SourceFallbackDOM},
	}
	for _, c := range cases {
		if got := chooseSource(c.count, c.err); got != c.want {
			t.Errorf("chooseSource(%d, %v) = %q, want %q", c.count, c.err, got, c.want)
		}
	}
}

// Mirrors the vision-first scenario: declared primary/secondary variables
// plus two strong visual colors.
func TestVisionFirstScenario(t *testing.T) {
	vars := []colorspace.Declared{
		{Name: "--primary", Value: "#3B82F6"},
		{Name: "--secondary", Value: "#10B981"},
	}
	visual := []palette.VisualColor{
		{Hex: "#3B82F6", Area: 1000},
		{Hex: "#10B981", Area: 800},
	}

	source := chooseSource(len(visual), nil)
	if source != SourceVisionFirst {
		t.Fatalf("source = %q, want vision-first", source)
	}

	pal := palette.MergeVisionFirst(palette.Prioritize(vars), visual)
	if len(pal) == 0 || pal[0] != "#3b82f6" {
		t.Errorf("palette[0] = %v, want #3b82f6", pal)
	}
}

// Mirrors the fallback scenario: visual extraction threw, DOM categories
// carry the signal.
func TestFallbackDOMScenario(t *testing.T) {
	dom := DOMColors{
		Logo:       []string{"#3b82f6"},
		CTA:        []string{"#10b981"},
		Navigation: []string{"#f59e0b"},
	}

	source := chooseSource(0, errors.New("png decode failed"))
	if source != SourceFallbackDOM {
		t.Fatalf("source = %q, want fallback-dom", source)
	}

	pal := palette.MergeDOMFallback(nil,
		dom.Logo, dom.CTA, dom.Navigation, dom.Headings, dom.Accent)
	want := []string{"#3b82f6", "#10b981", "#f59e0b"}
	if len(pal) != len(want) {
		t.Fatalf("palette = %v, want %v", pal, want)
	}
	for i := range want {
		if pal[i] != want[i] {
			t.Errorf("palette[%d] = %q, want %q", i, pal[i], want[i])
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	in := []string{
		"rgb(59, 130, 246)",
		"rgba(59, 130, 246, 0.5)", // same color, dropped as duplicate
		"oklch(0.7 0.1 200)",      // unparseable, dropped
		"rgb(16, 185, 129)",
		"rgb(245, 158, 11)",
		"rgb(17, 24, 39)",
		"rgb(255, 255, 255)",
		"rgb(0, 0, 0)", // over the per-category cap
	}
	got := normalizeCategory(in)
	if len(got) != maxPerCategory {
		t.Fatalf("got %d entries, want %d: %v", len(got), maxPerCategory, got)
	}
	if got[0] != "#3b82f6" {
		t.Errorf("got[0] = %q", got[0])
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.defaults()
	if cfg.NavTimeout.Seconds() != 15 {
		t.Errorf("NavTimeout = %v", cfg.NavTimeout)
	}
	if cfg.Validator == nil || cfg.Logger == nil {
		t.Error("defaults must fill validator and logger")
	}
}
