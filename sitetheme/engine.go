// Package sitetheme orchestrates the website theme extraction pipeline:
// validate the URL, render the page in an IP-pinned browser sandbox, read
// three independent color signals, merge them into one ordered palette and
// synthesize a contrast-safe theme from it.
package sitetheme

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/tinge/browser"
	"github.com/hazyhaar/tinge/palette"
	"github.com/hazyhaar/tinge/sitetheme/internal/metacolor"
	"github.com/hazyhaar/tinge/theme"
	"github.com/hazyhaar/tinge/urlguard"
)

// Config configures the extraction engine.
type Config struct {
	// NavTimeout bounds navigation and the quiet-network wait. Default: 15s.
	NavTimeout time.Duration

	// Viewport rendered and screenshotted. Default: 1440x900.
	ViewportWidth  int
	ViewportHeight int

	// SaturationCutoff for the grayscale filter. Zero selects the package
	// default.
	SaturationCutoff float64

	// Validator defaults to one backed by the system resolver.
	Validator *urlguard.Validator

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 15 * time.Second
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1440
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 900
	}
	if c.Validator == nil {
		c.Validator = urlguard.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Engine runs website extractions. Stateless between requests: every
// invocation owns an exclusive browser sandbox for its lifetime, so
// concurrent requests never share rendering state.
type Engine struct {
	cfg Config
}

// New creates an Engine.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{cfg: cfg}
}

// Extract runs the linear stage sequence for one URL. Failures from
// validation, launch, navigation and synthesis propagate unchanged; only the
// visual stage's own failure is converted into a strategy signal. The
// sandbox is closed on every exit path once launch has succeeded; if launch
// never completed there is nothing to close.
func (e *Engine) Extract(ctx context.Context, rawURL string) (*Result, error) {
	log := e.cfg.Logger

	target, err := e.cfg.Validator.Validate(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	log.Info("sitetheme: validated target", "target", target.String())

	sb, err := browser.Launch(ctx, browser.Config{
		Timeout:        e.cfg.NavTimeout,
		ViewportWidth:  e.cfg.ViewportWidth,
		ViewportHeight: e.cfg.ViewportHeight,
		ResolvedIP:     target.ResolvedIP,
		Hostname:       target.Hostname,
		Logger:         log,
	})
	if err != nil {
		return nil, err
	}
	defer sb.Close()

	page, err := sb.Page(ctx)
	if err != nil {
		return nil, err
	}

	if err := sb.Navigate(ctx, page, target.URL.String()); err != nil {
		return nil, err
	}

	vars := extractStyleVars(ctx, page, log)
	vars = appendMetaColors(ctx, sb, page, vars)
	dom := extractDOMColors(ctx, page, log)

	visual, visualErr := extractVisualColors(ctx, sb, page, e.cfg.SaturationCutoff)
	if visualErr != nil {
		log.Warn("sitetheme: visual extraction degraded", "error", visualErr)
	}

	styleHex := palette.Prioritize(vars.Vars)

	var pal palette.Palette
	source := chooseSource(len(visual), visualErr)
	switch source {
	case SourceVisionFirst:
		pal = palette.MergeVisionFirst(styleHex, visual)
	default:
		pal = palette.MergeDOMFallback(styleHex,
			dom.Logo, dom.CTA, dom.Navigation, dom.Headings, dom.Accent)
	}

	log.Info("sitetheme: extracted palette",
		"source", source, "colors", len(pal),
		"style_vars", len(vars.Vars), "visual", len(visual))

	return &Result{
		Palette: pal,
		Theme:   theme.Synthesize(pal),
		Source:  source,
	}, nil
}

// appendMetaColors adds declarative HTML color hints (theme-color and
// friends) after the declared variables. Best effort.
func appendMetaColors(ctx context.Context, sb *browser.Sandbox, page *rod.Page, vars StyleVars) StyleVars {
	doc, err := sb.HTML(ctx, page)
	if err != nil {
		return vars
	}
	hints := metacolor.Scan(doc)
	if len(hints) == 0 {
		return vars
	}
	vars.Vars = append(vars.Vars, hints...)
	vars.Found = len(vars.Vars) > 0
	return vars
}
