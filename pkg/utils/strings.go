package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize title-cases each word, "VISA gold" becomes "Visa Gold"
func Capitalize(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}

// Truncate cuts s to at most n runes so table columns stay aligned for non-ASCII text
func Truncate(s string, n int) string {
	r := []rune(s)
	return string(r[:max(0, min(n, len(r)))])
}
