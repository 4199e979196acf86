package models

import "time"

// Note is a single text note. OwnerID is a weak reference to users.id: nil
// means the note is ownerless and mutable by anyone. The owning User is
// never loaded implicitly; resolve it through UserRepo when needed.
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	OwnerID   *int64     `json:"owner_id,omitempty"`
}
