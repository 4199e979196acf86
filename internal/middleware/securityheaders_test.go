package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func handlerWithStatus(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulate a framework that advertises itself.
		w.Header().Set("X-Powered-By", "superframework/1.0")
		w.WriteHeader(status)
	})
}

var fixedHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "geolocation=(), camera=(), microphone=()",
	"Server":                 ServerName,
}

// The headers must be present on every response, success and error alike.
func TestSecurityHeaders_AllStatusCodes(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusFound, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		SecurityHeaders(handlerWithStatus(status)).ServeHTTP(rr, req)

		if rr.Code != status {
			t.Errorf("status %d: got %d", status, rr.Code)
		}
		for name, want := range fixedHeaders {
			if got := rr.Header().Get(name); got != want {
				t.Errorf("status %d: header %s = %q, want %q", status, name, got, want)
			}
		}
		csp := rr.Header().Get("Content-Security-Policy")
		for _, directive := range []string{
			"default-src 'self'",
			"script-src 'self'",
			"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://fonts.googleapis.com",
			"img-src 'self' data:",
			"font-src 'self' data:",
			"connect-src 'self'",
			"frame-ancestors 'none'",
		} {
			if !strings.Contains(csp, directive) {
				t.Errorf("status %d: CSP missing %q: %s", status, directive, csp)
			}
		}
	}
}

func TestSecurityHeaders_RemovesStackIdentifiers(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	SecurityHeaders(handlerWithStatus(http.StatusOK)).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Powered-By"); got != "" {
		t.Errorf("X-Powered-By leaked: %q", got)
	}
	if got := rr.Header().Get("Server"); got != ServerName {
		t.Errorf("Server = %q, want %q", got, ServerName)
	}
}

// Handlers that write a body without calling WriteHeader still get the
// scrub on the implicit 200.
func TestSecurityHeaders_ScrubsImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Powered-By", "superframework/1.0")
		w.Header().Set("Server", "superframework")
		w.Write([]byte("hello"))
	})
	SecurityHeaders(inner).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("X-Powered-By"); got != "" {
		t.Errorf("X-Powered-By leaked: %q", got)
	}
	if got := rr.Header().Get("Server"); got != ServerName {
		t.Errorf("Server = %q, want %q", got, ServerName)
	}
}

func TestSecurityHeaders_HSTSOnlyOverTLS(t *testing.T) {
	// Plain HTTP: no HSTS.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	SecurityHeaders(handlerWithStatus(http.StatusOK)).ServeHTTP(rr, req)
	if got := rr.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS set on plain HTTP: %q", got)
	}

	// Direct TLS.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "https://notewall.test/", nil)
	req.TLS = &tls.ConnectionState{}
	SecurityHeaders(handlerWithStatus(http.StatusOK)).ServeHTTP(rr, req)
	if got := rr.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=31536000") {
		t.Errorf("HSTS missing over TLS: %q", got)
	}

	// TLS terminated at a proxy.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	SecurityHeaders(handlerWithStatus(http.StatusOK)).ServeHTTP(rr, req)
	if got := rr.Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("HSTS missing behind TLS-terminating proxy")
	}
}

// A panicking handler still gets the headers because they are written
// before the handler runs.
func TestSecurityHeaders_SurvivesPanicInHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	SecurityHeaders(Recoverer(panicky)).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options after panic = %q", got)
	}
}
