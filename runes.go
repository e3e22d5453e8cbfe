// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import "unicode"

const (
	// EOF is a sentinel for end of input
	EOF rune = rune(-1)
)

// isspace reports whether ch separates tokens.
// Other Unicode spaces are not whitespace and fail to scan.
func isspace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isquote reports whether ch opens a quoted identifier.
func isquote(ch rune) bool {
	return ch == '"' || ch == '\''
}

// isname reports whether ch may appear in an unquoted identifier.
func isname(ch rune) bool {
	return ch == '_' || ch == '-' || unicode.IsLetter(ch) || unicode.IsNumber(ch)
}
