// Package text holds the small string helpers shared by the rule engine,
// prompt routing and lesson lookup.
package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower returns s lower-cased with Unicode-aware rules.
// A new caser is built per call because cases.Caser is not safe for concurrent use.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
// An empty needle never matches.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(Lower(haystack), Lower(needle))
}

// ContainsAnyFold reports whether any of needles occurs in haystack, ignoring case.
func ContainsAnyFold(haystack string, needles ...string) bool {
	lowered := Lower(haystack)
	for _, n := range needles {
		if n != "" && strings.Contains(lowered, Lower(n)) {
			return true
		}
	}
	return false
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
