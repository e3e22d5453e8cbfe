// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

// Kind implements enums for tokens
type Kind int

const (
	UNKNOWN Kind = iota

	LBRACE
	RBRACE
	SEMICOLON
	COLON
	LBRACKET
	RBRACKET
	EQUALS

	// selector punctuation
	DOT       // class marker
	GT        // direct child
	STAR      // all
	COMMA     // combinator-and
	PLUS      // after
	TILDE     // before
	AMPERSAND // parent reference

	Identifier // run of name characters or a quoted string

	EndOfInput // end of input
)

var kinds = [...]string{
	UNKNOWN:    "UNKNOWN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	SEMICOLON:  "SEMICOLON",
	COLON:      "COLON",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	EQUALS:     "EQUALS",
	DOT:        "DOT",
	GT:         "GT",
	STAR:       "STAR",
	COMMA:      "COMMA",
	PLUS:       "PLUS",
	TILDE:      "TILDE",
	AMPERSAND:  "AMPERSAND",
	Identifier: "Identifier",
	EndOfInput: "EndOfInput",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if 0 <= k && k < Kind(len(kinds)) {
		return kinds[k]
	}
	return "Kind(?)"
}

// punctuation maps each single-character symbol to its kind.
// Anything not in this table is either a quote, a name character, or illegal.
func punctuation(ch rune) (Kind, bool) {
	switch ch {
	case '{':
		return LBRACE, true
	case '}':
		return RBRACE, true
	case ';':
		return SEMICOLON, true
	case ':':
		return COLON, true
	case '[':
		return LBRACKET, true
	case ']':
		return RBRACKET, true
	case '=':
		return EQUALS, true
	case '.':
		return DOT, true
	case '>':
		return GT, true
	case '*':
		return STAR, true
	case ',':
		return COMMA, true
	case '+':
		return PLUS, true
	case '~':
		return TILDE, true
	case '&':
		return AMPERSAND, true
	}
	return UNKNOWN, false
}

// glyph returns the literal text for a punctuation kind.
func (k Kind) glyph() string {
	switch k {
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case SEMICOLON:
		return ";"
	case COLON:
		return ":"
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case EQUALS:
		return "="
	case DOT:
		return "."
	case GT:
		return ">"
	case STAR:
		return "*"
	case COMMA:
		return ","
	case PLUS:
		return "+"
	case TILDE:
		return "~"
	case AMPERSAND:
		return "&"
	}
	return ""
}

// IsSelector reports whether a token of this kind may appear in a selector.
// The colon is accepted so that pseudo-classes like ".a:hover" survive when
// they are not in the declaration position.
func (k Kind) IsSelector() bool {
	switch k {
	case DOT, GT, STAR, COMMA, PLUS, TILDE, AMPERSAND,
		LBRACKET, RBRACKET, EQUALS, COLON, Identifier:
		return true
	}
	return false
}
