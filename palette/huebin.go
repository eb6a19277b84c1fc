package palette

import (
	"fmt"
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// hueBinCount quantizes the hue circle into 15-degree bins. Wide enough
	// to absorb anti-aliasing noise, narrow enough to keep distinct brand
	// hues apart.
	hueBinCount = 24

	// maxSamples bounds the pixel work per image; larger images are sampled
	// on a coarser grid.
	maxSamples = 200_000

	// minAlpha skips mostly-transparent pixels.
	minAlpha = 0x8000
)

type bin struct {
	sumR, sumG, sumB uint64
	count            int
}

// HueBins clusters the image's pixels into quantized hue bins and returns one
// representative per non-empty bin (the mean color of the bin) with its
// sampled pixel count as Area, ordered by descending area. Ties break on bin
// index so the output is deterministic.
func HueBins(img image.Image) []VisualColor {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	step := 1
	for (w/step)*(h/step) > maxSamples {
		step++
	}

	var bins [hueBinCount]bin
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a < minAlpha {
				continue
			}
			c := colorful.Color{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
			hue, _, _ := c.Hsl()
			idx := int(hue/(360/hueBinCount)) % hueBinCount
			if idx < 0 {
				idx = 0
			}
			bins[idx].sumR += uint64(r >> 8)
			bins[idx].sumG += uint64(g >> 8)
			bins[idx].sumB += uint64(b >> 8)
			bins[idx].count++
		}
	}

	// Bins are visited in index order, so the stable sort makes area ties
	// deterministic.
	out := make([]VisualColor, 0, hueBinCount)
	for _, b := range bins {
		if b.count == 0 {
			continue
		}
		n := uint64(b.count)
		hex := fmt.Sprintf("#%02x%02x%02x", b.sumR/n, b.sumG/n, b.sumB/n)
		out = append(out, VisualColor{Hex: hex, Area: b.count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Area > out[j].Area
	})
	return out
}
