package gemini

import (
	"reflect"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{
			"bare object",
			`{"score": 80}`,
			`{"score": 80}`,
			true,
		},
		{
			"markdown fence",
			"Voici la réponse :\n```json\n{\"score\": 72}\n```\nBonne journée.",
			`{"score": 72}`,
			true,
		},
		{
			"nested object",
			`prefix {"a": {"b": 1}, "c": 2} suffix`,
			`{"a": {"b": 1}, "c": 2}`,
			true,
		},
		{
			"braces inside strings",
			`{"reason": "utilise { et } librement"}`,
			`{"reason": "utilise { et } librement"}`,
			true,
		},
		{
			"escaped quote inside string",
			`{"reason": "dit \"non\" ici"}`,
			`{"reason": "dit \"non\" ici"}`,
			true,
		},
		{
			"no object",
			"désolé, aucune donnée",
			"",
			false,
		},
		{
			"unbalanced",
			`{"score": 1`,
			"",
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSON(tc.raw)
			if ok != tc.ok || got != tc.expected {
				t.Fatalf("extractJSON(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestParseObjectRejectsInvalidPayload(t *testing.T) {
	if _, err := parseObject(`{"score": }`); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
	if _, err := parseObject("pas de json"); err == nil {
		t.Fatalf("expected an error without an object")
	}
}

func TestCoerceBool(t *testing.T) {
	cases := []struct {
		value    any
		expected bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"OUI", true},
		{"non", false},
		{float64(1), true},
		{float64(0), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := coerceBool(tc.value); got != tc.expected {
			t.Fatalf("coerceBool(%v) = %v, want %v", tc.value, got, tc.expected)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		value    any
		expected int
	}{
		{float64(72), 72},
		{float64(72.6), 73},
		{"85", 85},
		{" 60.2 ", 60},
		{"pas un nombre", 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := coerceInt(tc.value); got != tc.expected {
			t.Fatalf("coerceInt(%v) = %d, want %d", tc.value, got, tc.expected)
		}
	}
}

func TestCoerceStrings(t *testing.T) {
	got := coerceStrings([]any{"secteur pertinent", float64(3), "", nil})
	expected := []string{"secteur pertinent", "3"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("coerceStrings = %v, want %v", got, expected)
	}

	if got := coerceStrings("raison unique"); !reflect.DeepEqual(got, []string{"raison unique"}) {
		t.Fatalf("scalar fallback = %v", got)
	}
	if got := coerceStrings(nil); got != nil {
		t.Fatalf("nil input = %v, want nil", got)
	}
}
