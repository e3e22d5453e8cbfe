// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/mdhender/flatcss"
)

func TestPrintDiagnostic_LexError(t *testing.T) {
	src := []byte(".a {\n  width: 10%;\n}\n")
	_, err := flatcss.Compile(src)
	if err == nil {
		t.Fatal("want error, got nil")
	}
	var buf bytes.Buffer
	flatcss.PrintDiagnostic(&buf, flatcss.NewDiagnostic(err), "site.scss", src)
	want := "site.scss:2:12: error: unexpected character '%'\n" +
		"      width: 10%;\n" +
		"               ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestPrintDiagnostic_ParseErrorAtEnd(t *testing.T) {
	src := []byte(".a { b: c;")
	_, err := flatcss.Compile(src)
	if err == nil {
		t.Fatal("want error, got nil")
	}
	var buf bytes.Buffer
	flatcss.PrintDiagnostic(&buf, flatcss.NewDiagnostic(err), "site.scss", src)
	got := buf.String()
	if !strings.HasPrefix(got, "site.scss: error: expected RBRACE, got end of input\n") {
		t.Errorf("header: got %q", got)
	}
	if !strings.Contains(got, "note: ") {
		t.Errorf("want a note for premature end of input, got %q", got)
	}
}

func TestNewDiagnostic_WrappedError(t *testing.T) {
	_, err := flatcss.Compile([]byte("$"))
	diag := flatcss.NewDiagnostic(fmt.Errorf("site.scss: %w", err))
	if diag.Span == nil {
		t.Fatal("want a span for a wrapped LexError")
	}
	if diag.Span.Line != 1 || diag.Span.Column != 1 || diag.Span.Start != 0 || diag.Span.End != 1 {
		t.Errorf("got span %+v, want 1:1 [0,1)", *diag.Span)
	}
}
