package textutil

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"diacritics", "Éco-Rénovation Énergétique", "eco renovation energetique"},
		{"punctuation", "bâtiment (gros œuvre), charpente!", "batiment gros œuvre charpente"},
		{"whitespace collapse", "  aide   aux\tentreprises  ", "aide aux entreprises"},
		{"digits kept", "France 2030", "france 2030"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.expected {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTokensDropsShortWords(t *testing.T) {
	got := Tokens("la transition écologique du BTP")
	expected := []string{"transition", "ecologique", "btp"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("Tokens = %v, want %v", got, expected)
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	got := Dedupe([]string{"bois", "", "énergie", "bois", "chantier", "énergie"})
	expected := []string{"bois", "énergie", "chantier"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("Dedupe = %v, want %v", got, expected)
	}
}
