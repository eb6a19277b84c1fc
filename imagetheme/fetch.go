package imagetheme

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const fetchTimeout = 15 * time.Second

// fetch GETs an image URL with the same SSRF discipline as the website path:
// the URL is validated, its hostname resolved exactly once, and the HTTP
// dialer is pinned to that address so navigation-time re-resolution is
// impossible.
func (x *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := x.cfg.Validator.Validate(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: fetchTimeout}
	client := &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			// Dial the validated address no matter what the request host
			// resolves to now.
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				_, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				return dialer.DialContext(ctx, network, net.JoinHostPort(target.ResolvedIP, port))
			},
		},
		// A redirect could point anywhere, including back inside the
		// network perimeter. Refuse instead of revalidating.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("imagetheme: new request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagetheme: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imagetheme: fetch: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: content type %q", ErrBadImage, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, x.cfg.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("imagetheme: read body: %w", err)
	}
	return body, nil
}
