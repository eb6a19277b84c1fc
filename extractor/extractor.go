// Package extractor is the in-process facade over the two extraction paths:
// websites rendered in the browser sandbox, and plain images. Callers hand
// it the validated request body and persist whatever they want from the
// response; the engine itself stores nothing and mutates no shared state.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/tinge/imagetheme"
	"github.com/hazyhaar/tinge/sitetheme"
	"github.com/hazyhaar/tinge/theme"
	"github.com/hazyhaar/tinge/urlguard"
)

// ErrInvalidInput is returned for malformed requests (unknown source, empty
// data).
var ErrInvalidInput = errors.New("extractor: invalid input")

// Request is the external contract: source selects the path, data carries
// the URL, image URL, raw bytes or base64 payload.
type Request struct {
	Source string `json:"source"`
	Data   string `json:"data"`
}

// Response is the external contract's success shape.
type Response struct {
	Palette          []string     `json:"palette"`
	SuggestedTheme   theme.Colors `json:"suggestedTheme"`
	ExtractionSource string       `json:"extractionSource,omitempty"`
}

// Config wires the two paths.
type Config struct {
	Site   sitetheme.Config
	Image  imagetheme.Config
	Logger *slog.Logger
}

// Service dispatches requests to the website or image path.
type Service struct {
	site  *sitetheme.Engine
	image *imagetheme.Extractor
	log   *slog.Logger
}

// New creates the facade. A shared validator keeps the two paths' SSRF
// policy identical.
func New(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Site.Logger == nil {
		cfg.Site.Logger = cfg.Logger
	}
	if cfg.Image.Logger == nil {
		cfg.Image.Logger = cfg.Logger
	}
	if cfg.Site.Validator == nil && cfg.Image.Validator == nil {
		shared := urlguard.New()
		cfg.Site.Validator = shared
		cfg.Image.Validator = shared
	}

	return &Service{
		site:  sitetheme.New(cfg.Site),
		image: imagetheme.New(cfg.Image),
		log:   cfg.Logger,
	}
}

// Extract runs one request to completion.
func (s *Service) Extract(ctx context.Context, req Request) (*Response, error) {
	if req.Data == "" {
		return nil, fmt.Errorf("%w: data is required", ErrInvalidInput)
	}

	switch req.Source {
	case "website":
		res, err := s.site.Extract(ctx, req.Data)
		if err != nil {
			return nil, err
		}
		return &Response{
			Palette:          res.Palette,
			SuggestedTheme:   res.Theme,
			ExtractionSource: string(res.Source),
		}, nil

	case "file", "base64", "url":
		res, err := s.image.Extract(ctx, imagetheme.Input{
			Kind: imagetheme.Kind(req.Source),
			Data: req.Data,
		})
		if err != nil {
			return nil, err
		}
		return &Response{
			Palette:        res.Palette,
			SuggestedTheme: res.Theme,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}
}

// IsUserError reports whether err should map to a 4xx class: bad input,
// undecodable images and SSRF-policy violations. Everything else is the
// engine's fault.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, imagetheme.ErrBadImage) ||
		urlguard.IsPolicyError(err)
}
