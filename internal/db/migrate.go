package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the tables and indexes if they do not exist yet. Each
// statement block is idempotent, so the server can run this on every start.
func Migrate(db *sql.DB) error {
	usersSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	`

	if _, err := db.Exec(usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	notesSchema := `
	CREATE TABLE IF NOT EXISTS notes (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ,
		owner_id BIGINT REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_notes_owner_id ON notes(owner_id);
	CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
	`

	if _, err := db.Exec(notesSchema); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}

	sessionsSchema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		username TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		expires_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`

	if _, err := db.Exec(sessionsSchema); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}

	return nil
}
