package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dbalakin/notewall/internal/models"
)

// ==========================
// NoteRepo
// ==========================
type NoteRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{DB: db}
}

// ==========================
// List Notes (newest first; id breaks created_at ties so insertion order is stable)
// ==========================
func (r *NoteRepo) List(ctx context.Context) ([]models.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at, owner_id
		FROM notes
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &n.OwnerID); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// ==========================
// Get By ID
// ==========================
func (r *NoteRepo) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at, owner_id
		FROM notes
		WHERE id = $1
	`

	note := &models.Note{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt, &note.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

// ==========================
// Create Note (title/content pre-trimmed and validated by the caller)
// ==========================
func (r *NoteRepo) Create(ctx context.Context, title, content string, ownerID *int64) (*models.Note, error) {
	query := `
		INSERT INTO notes (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, created_at, updated_at, owner_id
	`

	note := &models.Note{}

	err := r.DB.QueryRowContext(ctx, query, title, content, ownerID).
		Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt, &note.OwnerID)

	if err != nil {
		return nil, err
	}

	return note, nil
}

// ==========================
// Update Note (bumps updated_at)
// ==========================
func (r *NoteRepo) Update(ctx context.Context, id int64, title, content string) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, title, content, created_at, updated_at, owner_id
	`

	note := &models.Note{}

	err := r.DB.QueryRowContext(ctx, query, title, content, id).
		Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt, &note.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

// ==========================
// Delete Note
// ==========================
func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
