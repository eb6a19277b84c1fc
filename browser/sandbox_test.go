package browser

import (
	"testing"
	"time"
)

func TestHostResolverRules(t *testing.T) {
	got := hostResolverRules("example.com", "93.184.216.34")
	if got != "MAP example.com 93.184.216.34" {
		t.Errorf("hostResolverRules = %q", got)
	}

	got = hostResolverRules("example.com", "2606:4700::1111")
	if got != "MAP example.com 2606:4700::1111" {
		t.Errorf("hostResolverRules (v6) = %q", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ResolvedIP: "93.184.216.34", Hostname: "example.com"}
	cfg.defaults()

	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout default = %v, want 15s", cfg.Timeout)
	}
	if cfg.ViewportWidth != 1440 || cfg.ViewportHeight != 900 {
		t.Errorf("viewport default = %dx%d, want 1440x900", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.Logger == nil {
		t.Error("Logger default should fall back to slog.Default")
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := &Sandbox{}
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
