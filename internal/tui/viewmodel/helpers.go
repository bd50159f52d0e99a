package viewmodel

import "strings"

// TruncateString shortens s to maxLen runes, marking the cut with "...".
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	// Remove control characters and normalize whitespace
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	// Collapse multiple spaces
	return strings.Join(strings.Fields(s), " ")
}
