// Package repo holds the hand-written SQL repositories and the sentinel
// errors shared across them. Handlers translate these into HTTP responses:
// ErrUsernameTaken becomes a field error on the registration form,
// ErrNoteNotFound a 404 page.
package repo

import "errors"

// ErrUsernameTaken is returned when an insert hits the unique constraint on
// users.username. The constraint is the only reliable guard: a pre-check
// followed by an insert can race with a concurrent registration.
var ErrUsernameTaken = errors.New("username already taken")

// ErrNoteNotFound is returned when a note id does not exist.
var ErrNoteNotFound = errors.New("note not found")

// ErrSessionNotFound is returned when a session id has no row, either
// because it was logged out or purged after expiry.
var ErrSessionNotFound = errors.New("session not found")
