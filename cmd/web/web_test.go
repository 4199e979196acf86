package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dbalakin/notewall/internal/auth"
	"github.com/dbalakin/notewall/internal/config"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func testConfig() config.Config {
	return config.Config{
		SessionSecret:   "test-secret-for-integration",
		SessionTTLHours: 1,
		BcryptCost:      4,
	}
}

// noRedirect returns a client that surfaces 302s instead of following them.
func noRedirect(srv *httptest.Server) *http.Client {
	c := srv.Client()
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}

// TestWeb_AnonymousRootRedirects is an integration test: it builds the full
// router with a sqlmock-backed DB and checks that a visitor without a
// session is sent to the registration page, with the hardening headers on
// the redirect itself.
func TestWeb_AnonymousRootRedirects(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := noRedirect(srv).Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("GET / status: got %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/register" {
		t.Errorf("Location = %q, want /register", loc)
	}
	assertHardened(t, resp)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestWeb_RegisterLoginBrowse walks the happy path end to end: register,
// log in, then load the note list with the cookie the login handed back.
func TestWeb_RegisterLoginBrowse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Register: INSERT INTO users
	mock.ExpectQuery(`INSERT INTO users \(username, password_hash\)`).
		WithArgs("walker", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(3, "walker", "hash", time.Now()))

	// Login: fetch user, then create the session row. The stored hash must
	// verify against the submitted password, so hash it for real.
	hash := mustHash(t, "walkerpass")
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("walker").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(3, "walker", hash, time.Now()))
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(sqlmock.AnyArg(), int64(3), "walker", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// GET /: session lookup, then the note list
	mock.ExpectQuery(`SELECT id, user_id, username, created_at, expires_at`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "created_at", "expires_at"}).
			AddRow("sid", 3, "walker", time.Now(), time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT id, title, content, created_at, updated_at, owner_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "created_at", "updated_at", "owner_id"}).
			AddRow(1, "hello", "world", time.Now(), nil, int64(3)))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()
	client := noRedirect(srv)

	// 1) Register
	resp, err := client.PostForm(srv.URL+"/register", map[string][]string{
		"username": {"walker"}, "password": {"walkerpass"}, "password2": {"walkerpass"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("register: got %d -> %q, want 302 -> /login", resp.StatusCode, resp.Header.Get("Location"))
	}

	// 2) Login
	resp, err = client.PostForm(srv.URL+"/login", map[string][]string{
		"username": {"walker"}, "password": {"walkerpass"},
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("login: got %d -> %q, want 302 -> /", resp.StatusCode, resp.Header.Get("Location"))
	}
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "notewall_session" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("login did not set a session cookie")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// 3) Browse with the cookie
	req, _ := http.NewRequest("GET", srv.URL+"/", nil)
	req.AddCookie(sessionCookie)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status: got %d, want 200", resp.StatusCode)
	}
	assertHardened(t, resp)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestWeb_HeadersOnNotFound checks the hardening headers reach responses
// the router generates itself.
func TestWeb_HeadersOnNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/no/such/page")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
	assertHardened(t, resp)
}

// TestWeb_Health is a quick smoke test for the health endpoint.
func TestWeb_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}

// TestWeb_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestWeb_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}

func assertHardened(t *testing.T, resp *http.Response) {
	t.Helper()
	checks := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Server":                 "NoteWall",
	}
	for header, want := range checks {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if csp := resp.Header.Get("Content-Security-Policy"); !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("Content-Security-Policy = %q, missing default-src", csp)
	}
	if resp.Header.Get("X-Powered-By") != "" {
		t.Error("X-Powered-By should be absent")
	}
}
