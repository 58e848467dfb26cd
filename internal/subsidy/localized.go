package subsidy

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultLanguage is preferred when a localized field carries several
// translations.
const DefaultLanguage = "fr"

// LocalizedText models a field that upstream sources provide either as a
// plain string or as a map keyed by language code. The two shapes are kept
// explicit instead of probing an untyped value at every read site.
type LocalizedText struct {
	Plain  string
	ByLang map[string]string
}

// NewText wraps a plain string.
func NewText(s string) LocalizedText {
	return LocalizedText{Plain: s}
}

// NewLocalized wraps a language map.
func NewLocalized(byLang map[string]string) LocalizedText {
	return LocalizedText{ByLang: byLang}
}

// Value returns the preferred text: the plain form when present, otherwise
// the default-language entry, otherwise the entry under the smallest
// language key so the fallback stays deterministic.
func (t LocalizedText) Value() string {
	if t.Plain != "" {
		return t.Plain
	}
	if len(t.ByLang) == 0 {
		return ""
	}
	if v, ok := t.ByLang[DefaultLanguage]; ok && v != "" {
		return v
	}

	keys := make([]string, 0, len(t.ByLang))
	for k := range t.ByLang {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t.ByLang[k] != "" {
			return t.ByLang[k]
		}
	}
	return ""
}

// In returns the text for a specific language, falling back to Value.
func (t LocalizedText) In(lang string) string {
	if v, ok := t.ByLang[lang]; ok && v != "" {
		return v
	}
	return t.Value()
}

// IsEmpty reports whether no translation carries text.
func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.Value()) == ""
}

// UnmarshalJSON accepts either a JSON string or a language map.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*t = LocalizedText{}
		return nil
	}

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = LocalizedText{Plain: plain}
		return nil
	}

	var byLang map[string]string
	if err := json.Unmarshal(data, &byLang); err != nil {
		return err
	}
	*t = LocalizedText{ByLang: byLang}
	return nil
}

// MarshalJSON writes back the same shape the value was parsed from.
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if len(t.ByLang) > 0 {
		return json.Marshal(t.ByLang)
	}
	return json.Marshal(t.Plain)
}
