package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "aide à la rénovation",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "aide",
			limit:  10,
			expect: "aide",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "aide à la rénovation énergétique",
			limit:  4,
			expect: "aide...",
		},
		{
			name:   "counts runes not bytes",
			input:  "énergétique",
			limit:  5,
			expect: "énerg...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  subvention  ",
			limit:  6,
			expect: "subven...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
