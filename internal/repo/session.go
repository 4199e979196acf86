package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dbalakin/notewall/internal/models"
)

// ==========================
// SessionRepo
// ==========================
type SessionRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// ==========================
// Create Session
// ==========================
func (r *SessionRepo) Create(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, username, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.DB.ExecContext(ctx, query, s.ID, s.UserID, s.Username, s.ExpiresAt)
	return err
}

// ==========================
// Get Session (expired rows are treated as missing)
// ==========================
func (r *SessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, username, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()
	`

	s := &models.Session{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.UserID, &s.Username, &s.CreatedAt, &s.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return s, nil
}

// ==========================
// Delete Session (idempotent; deleting a missing session is not an error)
// ==========================
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// ==========================
// Delete Expired Sessions (returns how many rows were purged)
// ==========================
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
