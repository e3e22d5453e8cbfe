// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import (
	"fmt"
	"log/slog"
	"strings"
)

/*
Invariants:
 * The token slice ends with an EndOfInput token. Parse appends one if the
   caller forgot, so peek() and peekN() never index past the end.
 * peek() returns the token to be consumed next and never changes state.
 * advance() returns the current token and moves forward. Once the cursor
   reaches EndOfInput it stays there; advance() keeps returning it.
 * A declaration is recognized by one token of lookahead: the token after
   the current one is a COLON. Everything else in a body is a nested block.
*/

type parser struct {
	tokens []Token
	pos    int

	logger *slog.Logger
	depth  int
}

// Parse builds the block tree from a token sequence.
// An input holding only the end of input token yields no blocks.
func Parse(tokens []Token) ([]*Block, error) {
	return ParseWithLogger(tokens, nil)
}

// ParseWithLogger is Parse with debug tracing sent to logger.
// The logger may be nil.
func ParseWithLogger(tokens []Token, logger *slog.Logger) ([]*Block, error) {
	p := newParser(tokens, logger)
	return p.parseStylesheet()
}

// ParseSource tokenizes and parses source text.
func ParseSource(source []byte) ([]*Block, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func newParser(tokens []Token, logger *slog.Logger) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EndOfInput {
		tokens = append(tokens[:len(tokens):len(tokens)], EndToken())
	}
	return &parser{tokens: tokens, logger: logger}
}

// parseStylesheet parses blocks until the end of input.
func (p *parser) parseStylesheet() ([]*Block, error) {
	blocks := []*Block{}
	for !p.isAtEnd() {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// parseBlock parses
//
//	selector '{' ( declaration | block )* '}'
func (p *parser) parseBlock() (*Block, error) {
	p.depth++
	defer func() { p.depth-- }()

	selector, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	block := &Block{Selector: selector}
	p.debug("block %q", selector)

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	for !p.match(RBRACE) {
		if p.isAtEnd() {
			return nil, p.errorExpected(RBRACE)
		}
		if p.peekN(1).Is(COLON) {
			decl, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			block.Declarations = append(block.Declarations, decl)
			continue
		}
		child, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, child)
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseSelector concatenates the text of the selector tokens at the cursor.
// No whitespace is inserted between fragments.
func (p *parser) parseSelector() (string, error) {
	if !p.peek().Kind.IsSelector() {
		return "", p.errorExpected(Identifier)
	}
	var sb strings.Builder
	for p.peek().Kind.IsSelector() {
		sb.WriteString(p.advance().Text)
	}
	return sb.String(), nil
}

// parseDeclaration parses
//
//	Identifier ':' Identifier ';'
func (p *parser) parseDeclaration() (Declaration, error) {
	name, err := p.expect(Identifier)
	if err != nil {
		return Declaration{}, err
	}
	if _, err := p.expect(COLON); err != nil {
		return Declaration{}, err
	}
	value, err := p.expect(Identifier)
	if err != nil {
		return Declaration{}, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return Declaration{}, err
	}
	p.debug("declaration %s: %s", name.Text, value.Text)
	return Declaration{Name: name.Text, Value: value.Text}, nil
}

// peek returns the current lookahead token without consuming it.
func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

// peekN returns the token n positions past the cursor without consuming
// anything. Looking past the end returns the end of input token.
func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

// advance consumes and returns the current token.
// EOF is returned repeatedly but the cursor doesn't move past it.
func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != EndOfInput {
		p.pos++
	}
	return tok
}

// match reports whether the current lookahead token matches the given kind.
func (p *parser) match(kind Kind) bool {
	return p.peek().Is(kind)
}

// expect consumes and returns the current token if its Kind equals kind.
// Otherwise it returns a ParseError and leaves the cursor alone.
func (p *parser) expect(kind Kind) (Token, error) {
	if !p.match(kind) {
		return Token{}, p.errorExpected(kind)
	}
	return p.advance(), nil
}

// isAtEnd reports whether the cursor is on the end of input token.
func (p *parser) isAtEnd() bool {
	return p.match(EndOfInput)
}

func (p *parser) errorExpected(kind Kind) error {
	err := &ParseError{Expected: kind, Found: p.peek()}
	if p.logger != nil {
		p.logger.Error(fmt.Sprintf("token %d: %v", p.pos, err))
	}
	return err
}

func (p *parser) debug(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(fmt.Sprintf("%*s%s", 2*(p.depth-1), "", fmt.Sprintf(format, args...)))
}
