package textutil

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase words", "Round One Team A", "round-one-team-a"},
		{"collapses symbol runs", "R1 / Team  (A)!", "r1-team-a"},
		{"keeps digits", "period2 run03", "period2-run03"},
		{"trims edges", "  edgy  ", "edgy"},
		{"empty input", "", ""},
		{"only symbols", "///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
