// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import (
	"io"
	"strings"
)

// ParentReference is the selector marker replaced by the parent's
// resolved selector.
const ParentReference = "&"

// Resolve returns the resolved selector for a nested block with raw
// selector own under a parent whose resolved selector is parent.
//
//	Resolve(".a", "&.b")  == ".a.b"
//	Resolve(".a", ".b")   == ".a .b"
//	Resolve(".a", "& > &") == ".a > .a"
func Resolve(parent, own string) string {
	if strings.Contains(own, ParentReference) {
		return strings.ReplaceAll(own, ParentReference, parent)
	}
	return parent + " " + own
}

// Rules flattens the block tree into rules.
func Rules(blocks []*Block, options ...Option) ([]Rule, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return nil, err
	}
	return cfg.rules(blocks), nil
}

// rules resolves top-level blocks to their own selectors and flattens
// each tree in turn.
func (c *Config) rules(blocks []*Block) []Rule {
	var rules []Rule
	for _, block := range blocks {
		rules = c.flatten(rules, block, block.Selector)
	}
	return rules
}

// flatten appends the rules for block, whose resolved selector has
// already been computed, and for all of its descendants.
func (c *Config) flatten(rules []Rule, block *Block, selector string) []Rule {
	if c.order == ParentFirst {
		rules = c.emit(rules, block, selector)
	}
	for _, child := range block.Children {
		rules = c.flatten(rules, child, Resolve(selector, child.Selector))
	}
	if c.order == ChildrenFirst {
		rules = c.emit(rules, block, selector)
	}
	return rules
}

func (c *Config) emit(rules []Rule, block *Block, selector string) []Rule {
	if len(block.Declarations) == 0 && !c.emptyRules {
		return rules
	}
	return append(rules, Rule{Selector: selector, Declarations: block.Declarations})
}

// Flatten returns the style sheet text for the block tree.
// The only errors come from invalid options.
func Flatten(blocks []*Block, options ...Option) (string, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := cfg.write(&sb, cfg.rules(blocks)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteRules writes the rules to w. Only the indent option affects the text.
func WriteRules(w io.Writer, rules []Rule, options ...Option) error {
	cfg, err := newConfig(options...)
	if err != nil {
		return err
	}
	return cfg.write(w, rules)
}

// write renders each rule as
//
//	selector {
//	    name: value;
//	}
//
// followed by a blank line.
func (c *Config) write(w io.Writer, rules []Rule) error {
	for _, rule := range rules {
		if _, err := io.WriteString(w, rule.Selector+" {\n"); err != nil {
			return err
		}
		for _, decl := range rule.Declarations {
			if _, err := io.WriteString(w, c.indent+decl.Name+": "+decl.Value+";\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "}\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// Compile runs the whole pipeline: tokenize, parse, and flatten.
// On error no text is returned.
func Compile(source []byte, options ...Option) (string, error) {
	blocks, err := ParseSource(source)
	if err != nil {
		return "", err
	}
	return Flatten(blocks, options...)
}
