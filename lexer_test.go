// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss_test

import (
	"errors"
	"testing"

	"github.com/mdhender/flatcss"
)

func assertTokens(t *testing.T, input string, want []flatcss.Token) {
	t.Helper()
	got, err := flatcss.Tokenize([]byte(input))
	if err != nil {
		t.Fatalf("%q: tokenize: %v", input, err)
	}
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d tokens %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d: got %v (%s), want %v (%s)", input, i, got[i], got[i].Kind, want[i], want[i].Kind)
		}
	}
}

func TestTokenize_Punctuation(t *testing.T) {
	for _, tc := range []struct {
		input string
		kind  flatcss.Kind
	}{
		{"{", flatcss.LBRACE},
		{"}", flatcss.RBRACE},
		{";", flatcss.SEMICOLON},
		{":", flatcss.COLON},
		{"[", flatcss.LBRACKET},
		{"]", flatcss.RBRACKET},
		{"=", flatcss.EQUALS},
		{".", flatcss.DOT},
		{">", flatcss.GT},
		{"*", flatcss.STAR},
		{",", flatcss.COMMA},
		{"+", flatcss.PLUS},
		{"~", flatcss.TILDE},
		{"&", flatcss.AMPERSAND},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assertTokens(t, tc.input, []flatcss.Token{
				{Kind: tc.kind, Text: tc.input},
				flatcss.EndToken(),
			})
		})
	}
}

func TestTokenize_Identifiers(t *testing.T) {
	assertTokens(t, "hello world", []flatcss.Token{
		flatcss.Ident("hello"),
		flatcss.Ident("world"),
		flatcss.EndToken(),
	})
}

func TestTokenize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\r\n "} {
		assertTokens(t, input, []flatcss.Token{flatcss.EndToken()})
	}
}

func TestTokenize_MixedInput(t *testing.T) {
	assertTokens(t, ".class { color: red; }", []flatcss.Token{
		flatcss.Punct(flatcss.DOT),
		flatcss.Ident("class"),
		flatcss.Punct(flatcss.LBRACE),
		flatcss.Ident("color"),
		flatcss.Punct(flatcss.COLON),
		flatcss.Ident("red"),
		flatcss.Punct(flatcss.SEMICOLON),
		flatcss.Punct(flatcss.RBRACE),
		flatcss.EndToken(),
	})
}

func TestTokenize_AttributeSelector(t *testing.T) {
	assertTokens(t, "input[type=number]", []flatcss.Token{
		flatcss.Ident("input"),
		flatcss.Punct(flatcss.LBRACKET),
		flatcss.Ident("type"),
		flatcss.Punct(flatcss.EQUALS),
		flatcss.Ident("number"),
		flatcss.Punct(flatcss.RBRACKET),
		flatcss.EndToken(),
	})
}

func TestTokenize_QuotedIdentifierKeepsQuotes(t *testing.T) {
	assertTokens(t, "[data-attr='value']", []flatcss.Token{
		flatcss.Punct(flatcss.LBRACKET),
		flatcss.Ident("data-attr"),
		flatcss.Punct(flatcss.EQUALS),
		flatcss.Ident("'value'"),
		flatcss.Punct(flatcss.RBRACKET),
		flatcss.EndToken(),
	})
	assertTokens(t, `content: "a b; {c}";`, []flatcss.Token{
		flatcss.Ident("content"),
		flatcss.Punct(flatcss.COLON),
		flatcss.Ident(`"a b; {c}"`),
		flatcss.Punct(flatcss.SEMICOLON),
		flatcss.EndToken(),
	})
	// the other quote character does not close the string
	assertTokens(t, `"it's"`, []flatcss.Token{
		flatcss.Ident(`"it's"`),
		flatcss.EndToken(),
	})
}

func TestTokenize_UnterminatedQuoteRunsToEnd(t *testing.T) {
	assertTokens(t, `a 'open { b`, []flatcss.Token{
		flatcss.Ident("a"),
		flatcss.Ident(`'open { b`),
		flatcss.EndToken(),
	})
}

func TestTokenize_UnicodeNames(t *testing.T) {
	assertTokens(t, ".größe_1-x", []flatcss.Token{
		flatcss.Punct(flatcss.DOT),
		flatcss.Ident("größe_1-x"),
		flatcss.EndToken(),
	})
}

func TestTokenize_LexError(t *testing.T) {
	for _, tc := range []struct {
		input  string
		char   rune
		offset int
		line   int
		column int
	}{
		{input: "$", char: '$', offset: 0, line: 1, column: 1},
		{input: ".a { color: #fff; }", char: '#', offset: 12, line: 1, column: 13},
		{input: ".a {\n  width: 10%;\n}", char: '%', offset: 16, line: 2, column: 12},
		{input: ".a {\r\n  b: (c);\r\n}", char: '(', offset: 11, line: 2, column: 6},
		{input: "a\fb", char: '\f', offset: 1, line: 1, column: 2},
		{input: "a\vb", char: '\v', offset: 1, line: 1, column: 2},
		{input: "a\u00a0b", char: '\u00a0', offset: 1, line: 1, column: 2},
	} {
		_, err := flatcss.Tokenize([]byte(tc.input))
		var lexErr *flatcss.LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: got error %v, want *LexError", tc.input, err)
		}
		if lexErr.Char != tc.char {
			t.Errorf("%q: char: got %q, want %q", tc.input, lexErr.Char, tc.char)
		}
		if lexErr.Offset != tc.offset {
			t.Errorf("%q: offset: got %d, want %d", tc.input, lexErr.Offset, tc.offset)
		}
		if lexErr.Line != tc.line || lexErr.Column != tc.column {
			t.Errorf("%q: position: got %d:%d, want %d:%d", tc.input, lexErr.Line, lexErr.Column, tc.line, tc.column)
		}
	}
}

func TestLexer_ScanAfterEndKeepsReturningEnd(t *testing.T) {
	l := flatcss.NewLexer("test", []byte("a"), nil)
	for i, want := range []flatcss.Kind{flatcss.Identifier, flatcss.EndOfInput, flatcss.EndOfInput, flatcss.EndOfInput} {
		tok, err := l.Scan()
		if err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
		if tok.Kind != want {
			t.Fatalf("scan %d: got %s, want %s", i, tok.Kind, want)
		}
	}
}

func TestTokenize_SingleEndOfInput(t *testing.T) {
	toks, err := flatcss.Tokenize([]byte(".a { b: c; }  \n"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	count := 0
	for _, tok := range toks {
		if tok.Is(flatcss.EndOfInput) {
			count++
		}
	}
	if count != 1 || toks[len(toks)-1].IsNot(flatcss.EndOfInput) {
		t.Fatalf("got %d end of input tokens (last %s), want exactly 1 at the end", count, toks[len(toks)-1].Kind)
	}
}
