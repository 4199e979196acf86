package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dbalakin/notewall/internal/models"
	"github.com/dbalakin/notewall/internal/repo"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password. Callers must not distinguish the two, otherwise the login form
// leaks which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	UsernameMinLen = 3
	UsernameMaxLen = 150
	PasswordMinLen = 6
)

// dummyHash is compared against when the username does not exist, so the
// missing-user path costs roughly the same as a wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ==========================
// Service
// ==========================
type Service struct {
	Users      *repo.UserRepo
	BcryptCost int
}

func NewService(users *repo.UserRepo, bcryptCost int) *Service {
	return &Service{Users: users, BcryptCost: bcryptCost}
}

// Register validates the form values, hashes the password and creates the
// user. Field-level problems come back in the map keyed by form field name;
// only unexpected storage failures are returned as an error. A successful
// registration does not log the user in.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*models.User, map[string]string, error) {
	username = strings.TrimSpace(username)

	fields := make(map[string]string)
	// Character counts, not byte counts.
	if n := utf8.RuneCountInString(username); n < UsernameMinLen || n > UsernameMaxLen {
		fields["username"] = "username must be between 3 and 150 characters"
	}
	if utf8.RuneCountInString(password) < PasswordMinLen {
		fields["password"] = "password must be at least 6 characters"
	}
	if confirm != password {
		fields["password2"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return nil, fields, nil
	}

	hash, err := HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.Users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			fields["username"] = "username is already taken"
			return nil, fields, nil
		}
		return nil, nil, err
	}

	return user, nil, nil
}

// Login returns the user when the username exists and the password
// verifies. Unknown username and wrong password both come back as
// ErrInvalidCredentials; storage failures pass through unchanged.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		// Burn a bcrypt comparison so this path is not measurably faster.
		VerifyPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		// A storage failure is not a wrong password; let it surface as a
		// server error.
		return nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
