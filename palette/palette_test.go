package palette

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/hazyhaar/tinge/colorspace"
)

func TestPrioritize_Order(t *testing.T) {
	vars := []colorspace.Declared{
		{Name: "--random-thing", Value: "#111111"},
		{Name: "--brand-secondary", Value: "#10B981"},
		{Name: "--color-primary-500", Value: "#3B82F6"},
		{Name: "--another", Value: "#222222"},
	}

	got := Prioritize(vars)
	want := []string{"#3b82f6", "#10b981", "#111111", "#222222"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrioritize_DedupPriorityWins(t *testing.T) {
	// A primary-named and a non-priority variable encode the same color:
	// the priority-named one determines final position.
	vars := []colorspace.Declared{
		{Name: "--footer-tint", Value: "#3B82F6"},
		{Name: "--unrelated", Value: "#abcdef"},
		{Name: "--primary", Value: "#3b82f6"},
	}

	got := Prioritize(vars)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 unique entries", got)
	}
	if got[0] != "#3b82f6" {
		t.Errorf("priority-named duplicate should rank first, got %v", got)
	}
}

func TestPrioritize_CapAndDedup(t *testing.T) {
	var vars []colorspace.Declared
	hexes := []string{
		"#111111", "#222222", "#333333", "#444444", "#555555",
		"#666666", "#777777", "#888888", "#999999", "#aaaaaa",
	}
	for _, h := range hexes {
		vars = append(vars, colorspace.Declared{Name: "--x-" + h[1:], Value: h})
		// Duplicate with different case must not add a second entry.
		vars = append(vars, colorspace.Declared{Name: "--y-" + h[1:], Value: strings.ToUpper(h)})
	}
	vars = append(vars, colorspace.Declared{Name: "--bad", Value: "oklch(0.5 0.1 120)"})

	got := Prioritize(vars)
	if len(got) > MaxColors {
		t.Fatalf("palette exceeds %d entries: %v", MaxColors, got)
	}
	seen := map[string]bool{}
	for _, h := range got {
		if seen[strings.ToLower(h)] {
			t.Errorf("duplicate entry %q in %v", h, got)
		}
		seen[strings.ToLower(h)] = true
	}
}

func TestPrioritize_DropsUnparseable(t *testing.T) {
	vars := []colorspace.Declared{
		{Name: "--primary", Value: "var(--other)"},
		{Name: "--secondary", Value: "#10b981"},
	}
	got := Prioritize(vars)
	if len(got) != 1 || got[0] != "#10b981" {
		t.Fatalf("got %v, want [#10b981]", got)
	}
}

// twoBlock builds a 100x100 image split between two colors.
func twoBlock(a, b color.RGBA, split int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < split {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

func TestHueBins_TwoBlocks(t *testing.T) {
	blue := color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	green := color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	img := twoBlock(blue, green, 70)

	bins := HueBins(img)
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2: %v", len(bins), bins)
	}
	if bins[0].Hex != "#3b82f6" {
		t.Errorf("dominant bin = %q, want #3b82f6", bins[0].Hex)
	}
	if bins[1].Hex != "#10b981" {
		t.Errorf("second bin = %q, want #10b981", bins[1].Hex)
	}
	if bins[0].Area <= bins[1].Area {
		t.Errorf("areas not in descending order: %v", bins)
	}
	if bins[0].Area != 7000 || bins[1].Area != 3000 {
		t.Errorf("areas = %d/%d, want 7000/3000", bins[0].Area, bins[1].Area)
	}
}

func TestHueBins_Deterministic(t *testing.T) {
	img := twoBlock(
		color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
		50,
	)
	first := HueBins(img)
	for i := 0; i < 5; i++ {
		again := HueBins(img)
		if len(again) != len(first) {
			t.Fatalf("non-deterministic bin count")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("non-deterministic output: %v vs %v", first, again)
			}
		}
	}
}

func TestHueBins_Empty(t *testing.T) {
	if bins := HueBins(image.NewRGBA(image.Rect(0, 0, 0, 0))); len(bins) != 0 {
		t.Errorf("empty image produced bins: %v", bins)
	}
}

func TestFilterGrayscale(t *testing.T) {
	in := []VisualColor{
		{Hex: "#ffffff", Area: 9000}, // near-white background
		{Hex: "#3b82f6", Area: 500},
		{Hex: "#808080", Area: 300}, // pure gray
		{Hex: "#0a0a0a", Area: 200}, // near-black
		{Hex: "#10b981", Area: 100},
	}
	got := FilterGrayscale(in, 0)
	if len(got) != 2 {
		t.Fatalf("got %v, want the two saturated colors", got)
	}
	if got[0].Hex != "#3b82f6" || got[1].Hex != "#10b981" {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestFilterGrayscale_CustomCutoff(t *testing.T) {
	in := []VisualColor{{Hex: "#8a7f75", Area: 10}} // very low saturation
	if got := FilterGrayscale(in, 0.5); len(got) != 0 {
		t.Errorf("cutoff 0.5 should drop %v", got)
	}
}

func TestMergeVisionFirst(t *testing.T) {
	style := []string{"#3b82f6", "#111827"}
	visual := []VisualColor{
		{Hex: "#3B82F6", Area: 1000},
		{Hex: "#10b981", Area: 800},
	}

	got := MergeVisionFirst(style, visual)
	want := []string{"#3b82f6", "#10b981", "#111827"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeDOMFallback_RoundRobin(t *testing.T) {
	style := []string{"#111827"}
	logo := []string{"#3b82f6", "#1d4ed8"}
	cta := []string{"#10b981"}
	nav := []string{"#f59e0b"}

	got := MergeDOMFallback(style, logo, cta, nav)
	want := []string{"#111827", "#3b82f6", "#10b981", "#f59e0b", "#1d4ed8"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMerge_Caps(t *testing.T) {
	var visual []VisualColor
	var style []string
	for _, h := range []string{"#100000", "#200000", "#300000", "#400000", "#500000", "#600000"} {
		visual = append(visual, VisualColor{Hex: h, Area: 1})
	}
	for _, h := range []string{"#700000", "#800000", "#900000", "#a00000"} {
		style = append(style, h)
	}

	got := MergeVisionFirst(style, visual)
	if len(got) != MaxColors {
		t.Fatalf("got %d entries, want %d", len(got), MaxColors)
	}
}
