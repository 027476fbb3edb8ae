// Package utils provides common utility functions.
package utils

import "strings"

// CleanCell trims a raw table cell and collapses internal whitespace runs
// (PDF extraction frequently wraps cell text across lines).
func CleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey lowercases a raw field name and replaces spaces with
// underscores so inconsistently cased source vocabularies compare equal.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Truncate shortens a string to maxLength runes for log and report output.
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	return string(runes[:maxLength]) + "..."
}

// CountDigits returns how many decimal digit runes s contains.
func CountDigits(s string) int {
	count := 0

	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}

	return count
}
