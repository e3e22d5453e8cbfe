// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package flatcss compiles nested style sheets into flat CSS.
//
// The input is a small SCSS-like language: blocks with a selector, a body
// of "name: value;" declarations, and nested blocks. A nested block's
// selector is joined to its parent's with a space, or, when it contains
// "&", by replacing each "&" with the parent's selector.
//
//	.card { color: red; &.active { color: blue; } .title { margin: 0; } }
//
// compiles to
//
//	.card {
//	    color: red;
//	}
//
//	.card.active {
//	    color: blue;
//	}
//
//	.card .title {
//	    margin: 0;
//	}
//
// Compilation runs in three stages, each a pure function of its input:
// Tokenize, Parse, and Flatten. Compile runs all three.
package flatcss
