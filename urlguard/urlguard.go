// Package urlguard validates externally-supplied URLs before any network
// fetch happens on their behalf.
//
// The contract defends against SSRF including DNS rebinding: every hostname
// is resolved exactly once, every resolved address is checked against the IP
// blocklist, and the single address returned in Target.ResolvedIP is what the
// caller must pin its fetch to. Nothing downstream may re-resolve.
package urlguard

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
)

// Validation failures. The SSRF-policy messages are deliberately generic so
// responses never confirm internal network topology.
var (
	ErrTooLong      = errors.New("URL too long")
	ErrInvalid      = errors.New("Invalid URL")
	ErrScheme       = errors.New("Only HTTP/HTTPS allowed")
	ErrNotAllowed   = errors.New("URL not allowed")
	ErrNoResolution = errors.New("Could not resolve hostname")
	ErrBlockedIP    = errors.New("URL resolves to blocked IP")
)

const maxURLLen = 2048

// deniedHosts are rejected before DNS resolution: localhost aliases and the
// well-known cloud metadata hostnames. Address literals (including decimal
// and hex obfuscations) are handled by DecodeLiteral, not listed here.
var deniedHosts = map[string]bool{
	"localhost":                true,
	"ip6-localhost":            true,
	"ip6-loopback":             true,
	"metadata.google.internal": true,
	"metadata.goog":            true,
	"instance-data":            true,
}

// Target is the outcome of validating one URL. Immutable; ResolvedIP is the
// exact address the browser or fetcher must be pinned to.
type Target struct {
	URL        *url.URL
	Hostname   string
	ResolvedIP string
}

// LookupFunc resolves host to addresses for one network ("ip4" or "ip6").
type LookupFunc func(ctx context.Context, network, host string) ([]netip.Addr, error)

// Validator checks URL syntax, policy and resolution.
type Validator struct {
	lookup LookupFunc
}

// Option configures a Validator.
type Option func(*Validator)

// WithLookup replaces the DNS resolver. Used in tests and in deployments
// that route resolution through a dedicated resolver.
func WithLookup(fn LookupFunc) Option {
	return func(v *Validator) { v.lookup = fn }
}

// New creates a Validator backed by the system resolver.
func New(opts ...Option) *Validator {
	v := &Validator{
		lookup: func(ctx context.Context, network, host string) ([]netip.Addr, error) {
			return net.DefaultResolver.LookupNetIP(ctx, network, host)
		},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate runs the checks in a fixed order, each fatal on violation:
// length, absolute parse, scheme, hostname denylist (pre-DNS, including
// obfuscated address literals), then resolution of both IPv4 and IPv6
// records with every resolved address run through the blocklist. IPv4 is
// preferred for the pinned address when both families resolve.
func (v *Validator) Validate(ctx context.Context, raw string) (*Target, error) {
	if len(raw) > maxURLLen {
		return nil, ErrTooLong
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return nil, ErrInvalid
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrScheme
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, ErrInvalid
	}
	if deniedHosts[host] {
		return nil, ErrNotAllowed
	}
	if addr, ok := DecodeLiteral(host); ok {
		// Address literal in the URL: no DNS involved, policy check only.
		if Blocked(addr) {
			return nil, ErrNotAllowed
		}
		return &Target{URL: u, Hostname: host, ResolvedIP: addr.Unmap().String()}, nil
	}

	v4, err4 := v.lookup(ctx, "ip4", host)
	v6, err6 := v.lookup(ctx, "ip6", host)
	if (err4 != nil || len(v4) == 0) && (err6 != nil || len(v6) == 0) {
		return nil, ErrNoResolution
	}
	if err4 != nil {
		v4 = nil
	}
	if err6 != nil {
		v6 = nil
	}

	for _, addr := range append(append([]netip.Addr{}, v4...), v6...) {
		if Blocked(addr) {
			return nil, ErrBlockedIP
		}
	}

	var pinned netip.Addr
	if len(v4) > 0 {
		pinned = v4[0]
	} else {
		pinned = v6[0]
	}

	return &Target{URL: u, Hostname: host, ResolvedIP: pinned.Unmap().String()}, nil
}

// IsPolicyError reports whether err is one of the validation or SSRF-policy
// failures, letting callers map them to a 4xx class.
func IsPolicyError(err error) bool {
	for _, sentinel := range []error{
		ErrTooLong, ErrInvalid, ErrScheme, ErrNotAllowed, ErrNoResolution, ErrBlockedIP,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer for logging without leaking credentials
// embedded in the URL.
func (t *Target) String() string {
	return fmt.Sprintf("%s -> %s", t.Hostname, t.ResolvedIP)
}
