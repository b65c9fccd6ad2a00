package models

import (
	"regexp"
	"strings"
)

// Guest side, derived from the token prefix.
const (
	SideGroom = "groom"
	SideBride = "bride"
)

var (
	tokenPattern = regexp.MustCompile(`^[gb]\d+$`)
	groomPattern = regexp.MustCompile(`^g\d+$`)
	bridePattern = regexp.MustCompile(`^b\d+$`)
)

// NormalizeToken canonicalizes untrusted token input: surrounding
// whitespace removed, lowercased. Tokens are case-insensitive on input.
func NormalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// ValidToken reports whether token is a well-formed invitation token
// (g001, b012, ...). Expects normalized input.
func ValidToken(token string) bool {
	return tokenPattern.MatchString(token)
}

// GroomToken reports whether token belongs to the groom namespace.
func GroomToken(token string) bool {
	return groomPattern.MatchString(NormalizeToken(token))
}

// BrideToken reports whether token belongs to the bride namespace.
func BrideToken(token string) bool {
	return bridePattern.MatchString(NormalizeToken(token))
}

// SideOf classifies a token into its invitation side. Bride pattern is
// checked first, groom is the fallback; this must stay consistent with
// the per-side patterns used when normalizing directory rows.
func SideOf(token string) string {
	if BrideToken(token) {
		return SideBride
	}
	return SideGroom
}
