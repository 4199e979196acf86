// Package session maps browser cookies to authenticated users. The cookie
// value is an HS256 JWT whose "sid" claim is a random session id; the
// session itself (user id, denormalized username, expiry) lives in the
// sessions table. The signature only proves the sid was issued by us, so a
// logged-out or purged sid is dead even if the cookie is still valid.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dbalakin/notewall/internal/models"
	"github.com/dbalakin/notewall/internal/repo"
)

// CookieName is the session cookie name.
const CookieName = "notewall_session"

// Identity is the resolved user for one request. A nil UserID means the
// request is anonymous.
type Identity struct {
	UserID   *int64
	Username string
}

// LoggedIn reports whether the request carries an authenticated user.
func (id Identity) LoggedIn() bool { return id.UserID != nil }

// ==========================
// Manager
// ==========================
type Manager struct {
	Sessions *repo.SessionRepo
	Secret   []byte
	TTL      time.Duration
}

func NewManager(sessions *repo.SessionRepo, secret []byte, ttl time.Duration) *Manager {
	return &Manager{Sessions: sessions, Secret: secret, TTL: ttl}
}

// Current resolves the identity of the request. Every failure mode (no
// cookie, bad signature, expired token, missing row) yields the anonymous
// identity; a broken cookie must never produce an error page.
func (m *Manager) Current(r *http.Request) Identity {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Identity{}
	}
	sid, err := m.parseSID(c.Value)
	if err != nil {
		return Identity{}
	}
	s, err := m.Sessions.Get(r.Context(), sid)
	if err != nil {
		return Identity{}
	}
	uid := s.UserID
	return Identity{UserID: &uid, Username: s.Username}
}

// Login discards any session the request already carried, then creates a
// fresh session row under a new id and sets the cookie. The new id defends
// against session fixation: nothing from before the login survives.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID int64, username string) error {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if sid, err := m.parseSID(c.Value); err == nil {
			if err := m.Sessions.Delete(r.Context(), sid); err != nil {
				return err
			}
		}
	}

	sid := uuid.NewString()
	expires := time.Now().Add(m.TTL)

	if err := m.Sessions.Create(r.Context(), models.Session{
		ID:        sid,
		UserID:    userID,
		Username:  username,
		ExpiresAt: expires,
	}); err != nil {
		return err
	}

	token, err := m.signSID(sid, expires)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return nil
}

// Logout deletes the session row and expires the cookie. Calling it without
// an active session is a no-op.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if sid, err := m.parseSID(c.Value); err == nil {
			if err := m.Sessions.Delete(r.Context(), sid); err != nil {
				return err
			}
		}
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}

func (m *Manager) signSID(sid string, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": expires.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m *Manager) parseSID(token string) (string, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.Secret, nil
	})
	if err != nil || !tok.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}
