package textutil

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLevenshteinSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 1},
		{"identical", "subvention", "subvention", 1},
		{"one empty", "aide", "", 0},
		{"classic", "kitten", "sitting", 1 - 3.0/7.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LevenshteinSimilarity(tc.a, tc.b)
			if !almostEqual(got, tc.expected) {
				t.Fatalf("LevenshteinSimilarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestLevenshteinSimilarityIsSymmetric(t *testing.T) {
	a, b := "aide à la rénovation", "aide à la création"
	if LevenshteinSimilarity(a, b) != LevenshteinSimilarity(b, a) {
		t.Fatalf("similarity is not symmetric for %q / %q", a, b)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 1},
		{"one empty", "aide au bois", "", 0},
		{"identical tokens", "transition écologique", "transition écologique", 1},
		{"disjoint", "aide agricole", "festival musique", 0},
		// tokens: {aide, renovation, energetique} vs {aide, renovation, globale}
		{"partial overlap", "aide rénovation énergétique", "aide rénovation globale", 2.0 / 4.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := JaccardSimilarity(tc.a, tc.b)
			if !almostEqual(got, tc.expected) {
				t.Fatalf("JaccardSimilarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}
