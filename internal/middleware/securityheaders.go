package middleware

import (
	"net/http"
	"strings"
)

// ServerName replaces whatever Server header the stack would otherwise
// advertise.
const ServerName = "NoteWall"

// contentSecurityPolicy locks every source to same-origin. Styles also allow
// the two CDNs the templates may pull from plus inline style attributes;
// images and fonts allow data: URIs for small inline assets.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self'; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://fonts.googleapis.com; " +
	"img-src 'self' data:; " +
	"font-src 'self' data:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none';"

// SecurityHeaders sets the fixed security response headers. It must be the
// outermost middleware so the headers land on every response, including
// error pages, redirects and recovered panics. HSTS is only sent when the
// request actually arrived over a secure transport. Identifying headers
// that handlers add later are scrubbed when the header block is flushed,
// not up front, so nothing written downstream leaks through.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

		if requestIsSecure(r) {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(&scrubWriter{ResponseWriter: w}, r)
	})
}

// scrubWriter strips stack-identifying headers the instant the header block
// goes out, so values set by inner handlers cannot reach the client.
type scrubWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *scrubWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		h := w.Header()
		h.Del("X-Powered-By")
		h.Set("Server", ServerName)
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write covers handlers that never call WriteHeader; the implicit 200 must
// be scrubbed too.
func (w *scrubWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// requestIsSecure reports whether the request came in over TLS, either
// directly or via a terminating proxy.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
