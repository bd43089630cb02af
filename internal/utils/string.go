package utils

import (
	"strings"
)

// HasSuffixFold reports whether s ends with suffix, ignoring case.
func HasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// SplitFields splits s on sep and trims each field.
func SplitFields(s, sep string) []string {
	return ConvertSlice(strings.Split(s, sep), strings.TrimSpace)
}
