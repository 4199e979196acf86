package auth

import (
	"testing"

	"github.com/dbalakin/notewall/internal/models"
)

func int64p(v int64) *int64 { return &v }

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name   string
		owner  *int64
		user   *int64
		expect bool
	}{
		{"owner edits own note", int64p(3), int64p(3), true},
		{"other user blocked", int64p(3), int64p(5), false},
		{"anonymous blocked from owned note", int64p(3), nil, false},
		// Ownerless notes are mutable by anyone. This mirrors the original
		// behaviour and looks more like an accident than a feature; the
		// cases below pin it down so a change is deliberate.
		{"ownerless note editable by any user", nil, int64p(5), true},
		{"ownerless note editable anonymously", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &models.Note{ID: 1, OwnerID: tt.owner}
			if got := CanMutate(note, tt.user); got != tt.expect {
				t.Errorf("CanMutate(owner=%v, user=%v) = %v, want %v", tt.owner, tt.user, got, tt.expect)
			}
		})
	}
}
