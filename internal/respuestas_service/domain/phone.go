package domain

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone canonicalizes a phone number for directory lookup: every
// non-digit character is removed, then a single leading "56" country code is
// stripped if present. "+56 9 1234 5678" and "912345678" both normalize to
// "912345678".
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	return strings.TrimPrefix(digits, "56")
}
