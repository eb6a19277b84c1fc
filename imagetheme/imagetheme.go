// Package imagetheme extracts a brand palette from a single image — an
// uploaded file, a base64 payload or a fetched URL — and synthesizes a theme
// through the same synthesizer the website path uses.
//
// The path is purely CPU-bound (decode + quantize), holds no state between
// calls and is safe to invoke concurrently from independent requests.
package imagetheme

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	// Raster formats accepted from users.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hazyhaar/tinge/palette"
	"github.com/hazyhaar/tinge/theme"
	"github.com/hazyhaar/tinge/urlguard"
)

// ErrBadImage is returned when the payload does not decode as a supported
// raster image.
var ErrBadImage = errors.New("imagetheme: unsupported or corrupt image")

// Kind selects the input transport.
type Kind string

const (
	KindFile   Kind = "file"   // Data carries raw image bytes
	KindBase64 Kind = "base64" // Data carries base64, data-URL prefix allowed
	KindURL    Kind = "url"    // Data carries an image URL, fetched pinned
)

// Input is one image extraction request.
type Input struct {
	Kind Kind
	Data string
}

// Result of one image extraction.
type Result struct {
	Palette palette.Palette
	Theme   theme.Colors
}

// Config configures an Extractor.
type Config struct {
	// MaxBytes caps decoded payloads and fetched bodies. Default: 10MB.
	MaxBytes int64

	// SaturationCutoff for the grayscale filter. Zero selects the package
	// default.
	SaturationCutoff float64

	// Validator guards the url kind. Defaults to the system resolver.
	Validator *urlguard.Validator

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 << 20
	}
	if c.Validator == nil {
		c.Validator = urlguard.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor decodes images into palettes. Stateless; one instance serves
// concurrent requests.
type Extractor struct {
	cfg Config
}

// New creates an Extractor.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg}
}

// Extract decodes the input, clusters its pixels and synthesizes a theme.
func (x *Extractor) Extract(ctx context.Context, in Input) (*Result, error) {
	raw, err := x.payload(ctx, in)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	bins := palette.HueBins(img)
	filtered := palette.FilterGrayscale(bins, x.cfg.SaturationCutoff)
	if len(filtered) == 0 {
		// Fully neutral images (grayscale logos) still deserve a palette:
		// fall back to the unfiltered dominant bins.
		filtered = bins
	}

	pal := palette.MergeVisionFirst(nil, filtered)

	x.cfg.Logger.Debug("imagetheme: extracted",
		"kind", in.Kind, "format", format, "colors", len(pal))

	return &Result{Palette: pal, Theme: theme.Synthesize(pal)}, nil
}

func (x *Extractor) payload(ctx context.Context, in Input) ([]byte, error) {
	switch in.Kind {
	case KindFile:
		if int64(len(in.Data)) > x.cfg.MaxBytes {
			return nil, fmt.Errorf("%w: payload too large", ErrBadImage)
		}
		return []byte(in.Data), nil

	case KindBase64:
		return decodeBase64(in.Data, x.cfg.MaxBytes)

	case KindURL:
		return x.fetch(ctx, in.Data)

	default:
		return nil, fmt.Errorf("imagetheme: unknown input kind %q", in.Kind)
	}
}

// decodeBase64 accepts both bare base64 and data-URL payloads.
func decodeBase64(data string, maxBytes int64) ([]byte, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+len(";base64,"):]
	}
	if int64(base64.StdEncoding.DecodedLen(len(data))) > maxBytes {
		return nil, fmt.Errorf("%w: payload too large", ErrBadImage)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64", ErrBadImage)
	}
	return raw, nil
}
