// Package utils provides small shared helpers for ghl.
package utils

import "strings"

// ContainsAny reports whether s contains any of the given substrings,
// case-insensitively.
func ContainsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Mask masks a sensitive string for display, showing only first and last few
// characters. E.g. "abc123xyz-long" -> "abc1****long".
func Mask(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

// Truncate shortens a string to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
