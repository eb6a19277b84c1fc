// Package browser runs one disposable, IP-pinned headless Chrome per
// extraction request.
//
// The sandbox routes the validated hostname to the already-resolved address
// via Chrome's host-resolver-rules flag, so navigation never performs a
// second DNS lookup — the resolve-then-pin split is what defeats DNS
// rebinding. Each Sandbox is exclusively owned by a single request and must
// be closed on every exit path once Launch has succeeded.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures one sandbox instance.
type Config struct {
	// Timeout is the hard bound on navigation and the quiet-network wait.
	// Default: 15s.
	Timeout time.Duration

	// Viewport dimensions. Default: 1440x900.
	ViewportWidth  int
	ViewportHeight int

	// ResolvedIP is the address the validated hostname is pinned to.
	ResolvedIP string

	// Hostname is the validated hostname being pinned.
	Hostname string

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1440
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 900
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Sandbox owns one headless Chrome process and its launcher state.
type Sandbox struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher

	mu     sync.Mutex
	closed bool
}

// hostResolverRules builds the Chrome mapping that pins hostname to ip,
// bypassing the browser's own DNS.
func hostResolverRules(hostname, ip string) string {
	return fmt.Sprintf("MAP %s %s", hostname, ip)
}

// Launch starts an isolated headless Chrome pinned to the validated address.
// On any failure nothing is left running and there is nothing to close.
func Launch(ctx context.Context, cfg Config) (*Sandbox, error) {
	cfg.defaults()
	if cfg.Hostname == "" || cfg.ResolvedIP == "" {
		return nil, fmt.Errorf("browser: hostname and resolved IP are required")
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("host-resolver-rules", hostResolverRules(cfg.Hostname, cfg.ResolvedIP))

	wsURL, err := l.Context(ctx).Launch()
	if err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	cfg.Logger.Debug("browser: launched sandbox",
		"hostname", cfg.Hostname, "pinned_ip", cfg.ResolvedIP)

	return &Sandbox{cfg: cfg, browser: b, lnch: l}, nil
}

// Page opens one stealth page with the configured viewport. The page
// inherits the pinned routing and is owned by the sandbox; closing the
// sandbox closes it.
func (s *Sandbox) Page(ctx context.Context) (*rod.Page, error) {
	page, err := stealth.Page(s.browser)
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	if err := page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.ViewportWidth,
		Height:            s.cfg.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("browser: set viewport: %w", err)
	}

	return page, nil
}

// Navigate loads the target URL under the hard timeout and then waits for
// the network to quiet down. The quiet-network wait is best effort: a page
// that keeps polling forever still renders, so only navigation errors
// propagate.
func (s *Sandbox) Navigate(ctx context.Context, page *rod.Page, pageURL string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		return fmt.Errorf("browser: wait load: %w", err)
	}

	wait := page.Context(navCtx).WaitRequestIdle(time.Second, nil, nil, nil)
	wait()

	return nil
}

// Screenshot captures the rendered viewport as PNG bytes.
func (s *Sandbox) Screenshot(ctx context.Context, page *rod.Page) ([]byte, error) {
	shot, err := page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return shot, nil
}

// HTML returns the rendered document's outer HTML.
func (s *Sandbox) HTML(ctx context.Context, page *rod.Page) ([]byte, error) {
	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("browser: get HTML: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

// Close shuts the browser and launcher down. Idempotent: the orchestrator
// defers it on every exit path after a successful Launch.
func (s *Sandbox) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.cfg.Logger.Warn("browser: close", "error", err)
		}
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
	return nil
}
