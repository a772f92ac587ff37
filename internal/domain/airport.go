package domain

import (
	"strings"
	"time"
	"unicode"
)

// ValidateICAO reports whether code is a well-formed ICAO airport code:
// exactly 4 letters, any case. No real-world airport lookup is performed.
func ValidateICAO(code string) bool {
	runes := []rune(code)
	if len(runes) != 4 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// CanonicalICAO upper-cases a code for storage and comparison.
func CanonicalICAO(code string) string {
	return strings.ToUpper(code)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp. Values without a zone offset are
// taken as UTC. Returns a zero time and false if the value does not parse.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
