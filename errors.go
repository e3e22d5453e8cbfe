// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import "fmt"

// LexError is returned when the input contains a character that starts
// no token.
type LexError struct {
	Char   rune // the offending character
	Offset int  // byte offset into the input (0-based)
	Line   int  // 1-based
	Column int  // 1-based, character column
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: unexpected character %q at offset %d", e.Line, e.Column, e.Char, e.Offset)
}

// ParseError is returned when the parser finds a token it did not expect.
// Running out of tokens is reported with Found set to the end of input token.
type ParseError struct {
	Expected Kind
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Found)
}
