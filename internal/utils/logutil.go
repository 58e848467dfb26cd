package utils

import "strings"

// TruncateForLog caps a string at limit runes for log previews (prompts and
// model responses routinely run to thousands of characters), appending an
// ellipsis when something was cut. The count is in runes so accented French
// text is never split mid-character.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
