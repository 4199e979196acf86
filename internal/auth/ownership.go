package auth

import "github.com/dbalakin/notewall/internal/models"

// CanMutate reports whether the current user may edit or delete the note.
// Ownerless notes (OwnerID nil) are mutable by anyone, anonymous visitors
// included; owned notes only by their owner. Callers turn false into a 403,
// never a redirect.
func CanMutate(note *models.Note, userID *int64) bool {
	if note.OwnerID == nil {
		return true
	}
	if userID == nil {
		return false
	}
	return *note.OwnerID == *userID
}
