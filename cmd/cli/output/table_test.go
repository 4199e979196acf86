package output

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 40); got != "short" {
		t.Errorf("short string changed: %q", got)
	}

	long := strings.Repeat("x", 50)
	if got := Truncate(long, 40); len(got) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncated ASCII: %q", got)
	}

	// Multibyte text must not be cut mid-rune.
	cyrillic := strings.Repeat("я", 50)
	got := Truncate(cyrillic, 40)
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 40 {
		t.Errorf("rune count = %d, want 40", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	if got := Timestamp(nil); got != "-" {
		t.Errorf("nil timestamp = %q, want -", got)
	}
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if got := Timestamp(&ts); got != "2026-03-14 09:30" {
		t.Errorf("Timestamp = %q", got)
	}
}
