package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes comfortably fits the largest legal form post (2000
// chars of content plus overhead) while keeping abusive uploads out.
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits the request body size. Oversized bodies make ParseForm
// fail, which handlers answer with 400.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
