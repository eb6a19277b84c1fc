// Package shield provides the HTTP middleware the extraction API sits
// behind: security headers, request body caps and per-IP rate limiting.
// These concerns belong to the serving layer, not the engine — the engine is
// invoked in-process and applies no throttling of its own.
package shield

import (
	"net"
	"net/http"
	"strings"
)

// clientIP extracts the requester's address, preferring the first
// X-Forwarded-For hop when a reverse proxy is in front.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
