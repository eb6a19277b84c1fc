package sitetheme

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/tinge/browser"
	"github.com/hazyhaar/tinge/palette"
)

// extractVisualColors captures the viewport, clusters pixels into hue bins
// and strips near-neutral entries. Unlike the other extractors this one
// returns its error: the orchestrator converts it into a strategy signal
// (fallback-dom), never into a request failure.
func extractVisualColors(ctx context.Context, sb *browser.Sandbox, page *rod.Page, satCutoff float64) ([]palette.VisualColor, error) {
	shot, err := sb.Screenshot(ctx, page)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("sitetheme: decode screenshot: %w", err)
	}

	bins := palette.HueBins(img)
	return palette.FilterGrayscale(bins, satCutoff), nil
}

// chooseSource is the strategy decision: vision-first iff visual extraction
// did not fail and at least two colors survived the grayscale filter.
func chooseSource(visualCount int, visualErr error) Source {
	if visualErr == nil && visualCount >= 2 {
		return SourceVisionFirst
	}
	return SourceFallbackDOM
}
