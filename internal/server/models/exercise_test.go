package models

import "testing"

func TestSlugID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bench Press", "bench-press"},
		{"bench  press", "bench-press"},
		{"3/4 Sit-Up", "3-4-sit-up"},
		{"Ab Roller ", "ab-roller"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SlugID(tt.in); got != tt.want {
			t.Fatalf("SlugID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
