package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space. Driver
// full names are matched exactly, so both sides get normalized the same way.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
