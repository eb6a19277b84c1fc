package shield

import "net/http"

// MaxBody returns middleware that caps every request body at maxBytes.
// Image uploads arrive base64-encoded in JSON, so the cap must leave room
// for the ~4/3 encoding overhead on top of the raw image limit.
func MaxBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
