// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Diagnostic represents a tokenizer or parser error with an optional
// span in the original source.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "unexpected character '$'"
	Span     *Span      // where in the file it occurred; nil if unknown
	Notes    []string   // optional additional help messages
}

// Span represents a range in the source: [Start, End).
type Span struct {
	// Byte offsets into the original input slice.
	Start int
	End   int

	// 1-based line and column of the *start* of the span.
	Line   int
	Column int
}

// NewDiagnostic converts an error from Tokenize, Parse, or Compile into a
// Diagnostic. Other errors are reported without a span.
func NewDiagnostic(err error) Diagnostic {
	var lexErr *LexError
	var parseErr *ParseError
	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{
			Severity: slog.LevelError,
			Message:  fmt.Sprintf("unexpected character %q", lexErr.Char),
			Span: &Span{
				Start:  lexErr.Offset,
				End:    lexErr.Offset + utf8.RuneLen(lexErr.Char),
				Line:   lexErr.Line,
				Column: lexErr.Column,
			},
		}
	case errors.As(err, &parseErr):
		diag := Diagnostic{
			Severity: slog.LevelError,
			Message:  parseErr.Error(),
		}
		if parseErr.Found.Kind == EndOfInput {
			diag.Notes = append(diag.Notes, "the input ended early; check for a missing '}' or ';'")
		}
		return diag
	}
	return Diagnostic{Severity: slog.LevelError, Message: err.Error()}
}

// PrintDiagnostic writes the diagnostic as
//
//	file:line:column: error: message
//	    source line
//	    ^
//
// Diagnostics without a span print only the header and notes.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src []byte) {
	span := diag.Span
	if span == nil {
		_, _ = fmt.Fprintf(w, "%s: %s: %s\n", filename, strings.ToLower(diag.Severity.String()), diag.Message)
	} else {
		_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			filename, span.Line, span.Column,
			strings.ToLower(diag.Severity.String()), diag.Message)

		line := findLine(src, span.Start, len(src))
		_, _ = fmt.Fprintf(w, "    %s\n", line)

		// caret underline
		caretCount := runeColumnOffset(span.Column, line)
		_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretCount))
	}

	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// findLine returns the line containing the start byte.
// It searches backwards from start to find the start of the line,
// then forward until it hits end or finds a new-line.
// The returned line does not include the new-line or a trailing CR.
func findLine(src []byte, start, end int) []byte {
	if start >= len(src) {
		return []byte{}
	}
	if end > len(src) {
		end = len(src)
	}

	lineStart := 0
	for i := start - 1; i >= 0; i-- {
		if src[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	lineEnd := end
	for i := start; i < end; i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}
	if lineEnd > lineStart && src[lineEnd-1] == '\r' {
		lineEnd--
	}

	return src[lineStart:lineEnd]
}

// runeColumnOffset returns the number of runes before the 1-based column,
// which is the number of spaces needed to put a caret under it.
func runeColumnOffset(column int, b []byte) (offset int) {
	for column > 1 && len(b) != 0 {
		// b is not empty, so DecodeRune will always return a width of 1 or more
		_, w := utf8.DecodeRune(b)
		b = b[w:]
		offset++
		column--
	}
	return offset
}
