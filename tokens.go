// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import "fmt"

// Token represents a single lexical token from the input.
//
// Tokens do not carry positions. Punctuation tokens carry their glyph as
// Text so that the parser can rebuild selectors by concatenation.
type Token struct {
	Kind Kind   // e.g. Identifier, DOT, LBRACE
	Text string // lexeme; quoted identifiers keep their quotes
}

// Punct returns the token for a punctuation kind.
func Punct(kind Kind) Token {
	return Token{Kind: kind, Text: kind.glyph()}
}

// Ident returns an Identifier token.
func Ident(text string) Token {
	return Token{Kind: Identifier, Text: text}
}

// EndToken returns the end of input token.
func EndToken() Token {
	return Token{Kind: EndOfInput}
}

// Is reports whether tok.Kind matches the provided kind.
func (tok Token) Is(kind Kind) bool {
	return tok.Kind == kind
}

// IsOneOf reports whether tok.Kind matches any of the provided kinds.
//
// This is useful when a parser accepts several token kinds at the same
// input position, e.g.:
//
//	if tok.IsOneOf(flatcss.DOT, flatcss.AMPERSAND, flatcss.Identifier) {
//	    ...
//	}
func (tok Token) IsOneOf(kinds ...Kind) bool {
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// IsNot reports whether tok.Kind does not match the provided kind.
// It is the opposite of Is(kind)
func (tok Token) IsNot(kind Kind) bool {
	return !tok.Is(kind)
}

// String implements the fmt.Stringer interface.
func (tok Token) String() string {
	switch tok.Kind {
	case EndOfInput:
		return "end of input"
	case Identifier:
		return fmt.Sprintf("identifier %q", tok.Text)
	}
	return fmt.Sprintf("%q", tok.Text)
}
