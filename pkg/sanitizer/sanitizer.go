// Package sanitizer normalizes free-text input before validation: guest
// names keep their content but lose stray whitespace, emails are lowered so
// lookups and logs stay consistent.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(r)
			lastWasSpace = false
		}
	}
	return b.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail trims and lowercases. Syntax checking is the validator's
// job, not ours.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
