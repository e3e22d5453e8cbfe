// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Lexer invariants and coordinate system
//
// The lexer treats input as an immutable UTF-8 byte slice.
//
//   r           - the current rune, or EOF when we have read past the end.
//                 "\r\n" is seen as a single "\n" rune so that line counts
//                 are right; both bytes stay in the token text.
//   posCurrRune - index into input of the first byte of r,
//                 or length when r == EOF.
//   posNextRune - index into input of the first byte of the *next* rune,
//                 or length when r == EOF.
//   anchorPos   - index into input where the current token starts.
//
// Invariants:
//   0 <= posCurrRune <= posNextRune <= length
//   r == EOF  <=> posCurrRune == posNextRune == length
//
// Scanners that produce a token call setAnchor() on the first rune of the
// token, advance() while r belongs to the token, and then slice the lexeme
// as input[anchorPos:posCurrRune].

type Lexer struct {
	name        string // name of the input source
	r           rune   // current rune
	line        int    // line number of current rune
	column      int    // column number of current rune
	posCurrRune int    // position of current rune
	posNextRune int    // position of next rune
	length      int    // length of input buffer
	input       []byte

	anchorPos    int
	anchorLine   int
	anchorColumn int

	// set once we have returned the end of input token
	atEnd bool

	// logging
	logger     *slog.Logger
	tokenCount int
}

// NewLexer returns a lexer for the input. The logger may be nil.
func NewLexer(name string, input []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		name:        name,
		input:       input,
		length:      len(input),
		line:        1,
		column:      0,
		posNextRune: 0,
		logger:      logger,
	}
	// read the first character to initialize the lexer.
	l.advance()
	return l
}

// Tokenize converts source text into a token sequence that always ends
// with exactly one EndOfInput token.
func Tokenize(source []byte) ([]Token, error) {
	return NewLexer("", source, nil).ScanAll()
}

// ScanAll returns every remaining token, including the end of input token.
func (l *Lexer) ScanAll() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Scan()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EndOfInput {
			return tokens, nil
		}
	}
}

// Scan returns the next token from the input buffer.
// Whitespace is skipped and never returned.
//
// Once we reach end of input, we always return the end of input token.
func (l *Lexer) Scan() (Token, error) {
	for isspace(l.peekChar()) {
		l.advance()
	}
	if l.iseof() {
		if !l.atEnd {
			l.atEnd = true
			l.debug("end of input after %d tokens", l.tokenCount)
		}
		return EndToken(), nil
	}

	l.setAnchor()

	if kind, ok := punctuation(l.peekChar()); ok {
		l.advance()
		return l.emit(Token{Kind: kind, Text: kind.glyph()}), nil
	}

	if l.scanQuoted() == Identifier || l.scanName() == Identifier {
		return l.emit(Ident(string(l.input[l.anchorPos:l.posCurrRune]))), nil
	}

	err := &LexError{
		Char:   l.peekChar(),
		Offset: l.anchorPos,
		Line:   l.anchorLine,
		Column: l.anchorColumn,
	}
	l.error("%v", err)
	return Token{}, err
}

// scanQuoted accepts a string delimited by matching quotes, including the
// quotes, and returns Identifier. An unterminated string runs to the end
// of the input.
func (l *Lexer) scanQuoted() Kind {
	quote := l.peekChar()
	if !isquote(quote) {
		return UNKNOWN
	}
	l.advance()
	for !l.iseof() && l.peekChar() != quote {
		l.advance()
	}
	if l.iseof() {
		l.debug("unterminated string starting at %d:%d", l.anchorLine, l.anchorColumn)
		return Identifier
	}
	l.advance() // closing quote
	return Identifier
}

// scanName accepts a run of name characters and returns Identifier.
func (l *Lexer) scanName() Kind {
	if !isname(l.peekChar()) {
		return UNKNOWN
	}
	for isname(l.peekChar()) {
		l.advance()
	}
	return Identifier
}

func (l *Lexer) emit(tok Token) Token {
	l.tokenCount++
	l.debug("%s %q", tok.Kind, tok.Text)
	return tok
}

// peekChar returns the current character without advancing the input.
func (l *Lexer) peekChar() rune {
	return l.r
}

// setAnchor marks the start of the current token.
func (l *Lexer) setAnchor() {
	l.anchorPos = l.posCurrRune
	l.anchorLine = l.line
	l.anchorColumn = l.column
}

// advance moves to the next rune and updates line/col.
// It treats "\r\n" as a single LF rune.
// On end of input, it sets r == EOF and both positions to length and returns.
func (l *Lexer) advance() {
	// already at or past the end?
	if l.posNextRune >= l.length {
		l.posCurrRune, l.posNextRune = l.length, l.length
		l.r = EOF
		return
	}

	// update line/col wrt the *current* rune before stepping
	if l.r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.posCurrRune = l.posNextRune

	// read the next rune, optimizing for ASCII input.
	r, w := rune(l.input[l.posCurrRune]), 1
	if r == '\r' && l.posCurrRune+1 < l.length && l.input[l.posCurrRune+1] == '\n' {
		r, w = '\n', 2
	} else if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.input[l.posCurrRune:])
	}
	l.posNextRune = l.posCurrRune + w
	l.r = r
}

func (l *Lexer) iseof() bool {
	return l.r == EOF
}

func (l *Lexer) debug(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf("%s:%d:%d %s", l.name, l.line, l.column, fmt.Sprintf(format, args...)))
}

func (l *Lexer) error(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Error(fmt.Sprintf("%s:%d:%d %s", l.name, l.line, l.column, fmt.Sprintf(format, args...)))
}
