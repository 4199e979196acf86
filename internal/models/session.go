package models

import "time"

// Session is one server-side browser session. ID is the random value carried
// (signed) in the cookie; Username is denormalized so pages can greet the
// user without a users lookup.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
