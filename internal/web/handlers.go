// Package web serves the HTML surface: note listing and CRUD, registration,
// login and logout. Handlers read the current identity from the request
// context (resolved by the session middleware), validate form input, and
// delegate to the repositories and the auth service.
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/dbalakin/notewall/internal/auth"
	"github.com/dbalakin/notewall/internal/metrics"
	"github.com/dbalakin/notewall/internal/models"
	"github.com/dbalakin/notewall/internal/repo"
	"github.com/dbalakin/notewall/internal/session"
)

const (
	TitleMaxLen   = 200
	ContentMaxLen = 2000
)

// ==========================
// Handler
// ==========================
type Handler struct {
	Notes    *repo.NoteRepo
	Auth     *auth.Service
	Sessions *session.Manager
}

func NewHandler(notes *repo.NoteRepo, authSvc *auth.Service, sessions *session.Manager) *Handler {
	return &Handler{Notes: notes, Auth: authSvc, Sessions: sessions}
}

func (h *Handler) identity(r *http.Request) session.Identity {
	return session.FromContext(r.Context())
}

// validateNote trims title and content and returns the trimmed values plus
// any field errors. Limits count characters, not bytes, so multibyte text
// gets the full budget.
func validateNote(title, content string) (string, string, map[string]string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	fields := make(map[string]string)
	if title == "" {
		fields["title"] = "title is required"
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		fields["title"] = "title must be at most 200 characters"
	}
	if content == "" {
		fields["content"] = "content is required"
	} else if utf8.RuneCountInString(content) > ContentMaxLen {
		fields["content"] = "content must be at most 2000 characters"
	}
	return title, content, fields
}

// ==========================
// Index: note list + create form
// ==========================

// Index lists all notes, newest first. Anonymous visitors are sent to the
// registration page, not the login page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	id := h.identity(r)
	if !id.LoggedIn() {
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	notes, err := h.Notes.List(r.Context())
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "could not load notes")
		return
	}

	h.render(w, http.StatusOK, "index.html", map[string]interface{}{
		"User":  id,
		"Flash": popFlash(w, r),
		"Notes": notes,
	})
}

// CreateNote handles the create form on the index page. The new note is
// owned by the session user.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	id := h.identity(r)
	if !id.LoggedIn() {
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "bad form")
		return
	}

	title, content, fields := validateNote(r.FormValue("title"), r.FormValue("content"))
	if len(fields) > 0 {
		notes, err := h.Notes.List(r.Context())
		if err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "could not load notes")
			return
		}
		h.render(w, http.StatusOK, "index.html", map[string]interface{}{
			"User":   id,
			"Notes":  notes,
			"Errors": fields,
			"Form":   map[string]string{"title": r.FormValue("title"), "content": r.FormValue("content")},
		})
		return
	}

	if _, err := h.Notes.Create(r.Context(), title, content, id.UserID); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "could not create note")
		return
	}
	metrics.IncNotesCreated(id.UserID != nil)

	setFlash(w, "Note created.")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Registration
// ==========================

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register.html", map[string]interface{}{
		"User":  h.identity(r),
		"Flash": popFlash(w, r),
	})
}

// Register creates the account and redirects to the login page. It never
// logs the new user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "bad form")
		return
	}

	username := r.FormValue("username")
	_, fields, err := h.Auth.Register(r.Context(),
		username, r.FormValue("password"), r.FormValue("password2"))
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "could not create account")
		return
	}
	if len(fields) > 0 {
		h.render(w, http.StatusOK, "register.html", map[string]interface{}{
			"User":   h.identity(r),
			"Errors": fields,
			"Form":   map[string]string{"username": username},
		})
		return
	}

	setFlash(w, "Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Login / Logout
// ==========================

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", map[string]interface{}{
		"User":  h.identity(r),
		"Flash": popFlash(w, r),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "bad form")
		return
	}

	user, err := h.Auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// One message for both unknown user and wrong password.
			setFlash(w, "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		h.renderError(w, r, http.StatusInternalServerError, "could not log in")
		return
	}

	if err := h.Sessions.Login(w, r, user.ID, user.Username); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "could not start session")
		return
	}

	setFlash(w, "Logged in.")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(w, r); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "could not log out")
		return
	}
	setFlash(w, "Logged out.")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Edit / Delete
// ==========================

// loadNoteForMutation resolves the {id} route param, loads the note and
// checks ownership. On failure it writes the error response and returns nil.
func (h *Handler) loadNoteForMutation(w http.ResponseWriter, r *http.Request) *models.Note {
	noteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "note not found")
		return nil
	}

	note, err := h.Notes.GetByID(r.Context(), noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			h.renderError(w, r, http.StatusNotFound, "note not found")
		} else {
			h.renderError(w, r, http.StatusInternalServerError, "could not load note")
		}
		return nil
	}

	if !auth.CanMutate(note, h.identity(r).UserID) {
		// 403 page, not a redirect: the visitor should see that the note
		// exists but is not theirs to change.
		h.renderError(w, r, http.StatusForbidden, "this note belongs to someone else")
		return nil
	}

	return note
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	note := h.loadNoteForMutation(w, r)
	if note == nil {
		return
	}

	h.render(w, http.StatusOK, "edit.html", map[string]interface{}{
		"User": h.identity(r),
		"Note": note,
		"Form": map[string]string{"title": note.Title, "content": note.Content},
	})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	note := h.loadNoteForMutation(w, r)
	if note == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "bad form")
		return
	}

	title, content, fields := validateNote(r.FormValue("title"), r.FormValue("content"))
	if len(fields) > 0 {
		h.render(w, http.StatusOK, "edit.html", map[string]interface{}{
			"User":   h.identity(r),
			"Note":   note,
			"Errors": fields,
			"Form":   map[string]string{"title": r.FormValue("title"), "content": r.FormValue("content")},
		})
		return
	}

	if _, err := h.Notes.Update(r.Context(), note.ID, title, content); err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			h.renderError(w, r, http.StatusNotFound, "note not found")
		} else {
			h.renderError(w, r, http.StatusInternalServerError, "could not update note")
		}
		return
	}

	setFlash(w, "Note updated.")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	note := h.loadNoteForMutation(w, r)
	if note == nil {
		return
	}

	if err := h.Notes.Delete(r.Context(), note.ID); err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			h.renderError(w, r, http.StatusNotFound, "note not found")
		} else {
			h.renderError(w, r, http.StatusInternalServerError, "could not delete note")
		}
		return
	}

	setFlash(w, "Note deleted.")
	http.Redirect(w, r, "/", http.StatusFound)
}
