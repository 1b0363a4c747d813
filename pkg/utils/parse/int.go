// ABOUTME: Utility functions for parsing integers from query strings
// ABOUTME: Provides lenient prefix parsing with default values

package parse

import (
	"strconv"
	"strings"
)

// LeadingInt parses the leading decimal integer of s, the way browsers parse
// page numbers: surrounding whitespace and trailing garbage are ignored, so
// "3", " 3 " and "3abc" all yield 3. ok is false when no digits lead the string.
func LeadingInt(s string) (value int, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// PositiveIntOr parses s with LeadingInt and falls back when the result is missing or below 1
func PositiveIntOr(s string, fallback int) int {
	v, ok := LeadingInt(s)
	if !ok || v < 1 {
		return fallback
	}
	return v
}
