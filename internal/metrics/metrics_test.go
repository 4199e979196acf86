package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "/"},
		{"/edit/123", "/edit/{id}"},
		{"/delete/45", "/delete/{id}"},
		{"/edit/123/extra", "/edit/{id}/extra"},
		{"/register", "/register"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
