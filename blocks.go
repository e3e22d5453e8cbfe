// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

// Block is one selector scope from the source.
//
// Children are owned by exactly one parent; the tree has no back
// references. The parser never returns a Block with an empty Selector.
type Block struct {
	Selector     string        `json:"selector"`
	Declarations []Declaration `json:"declarations,omitempty"`
	Children     []*Block      `json:"children,omitempty"`
}

// Declaration is a single "name: value;" property assignment.
type Declaration struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Rule is a resolved selector with the declarations of the Block it came from.
type Rule struct {
	Selector     string
	Declarations []Declaration
}
