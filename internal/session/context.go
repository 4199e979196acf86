package session

import (
	"context"
	"net/http"
)

type identityKey struct{}

// Middleware resolves the request's identity once and stores it in the
// context, so handlers never touch the cookie or the sessions table
// directly.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIdentity(r.Context(), m.Current(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity returns a context carrying the identity. Exposed so handler
// tests can run without a cookie round-trip.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by Middleware, or the anonymous
// identity when the middleware did not run.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}
