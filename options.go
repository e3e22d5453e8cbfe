// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package flatcss

import "fmt"

// Order is the order in which the flattener emits a block's rule
// relative to the rules of its descendants.
type Order int

const (
	// ParentFirst emits a block's rule, then each child subtree left to right.
	ParentFirst Order = iota
	// ChildrenFirst emits each child subtree left to right, then the block's rule.
	ChildrenFirst
)

func (o Order) String() string {
	switch o {
	case ParentFirst:
		return "parent-first"
	case ChildrenFirst:
		return "children-first"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Config holds the flattener settings. The zero value is not used
// directly; newConfig applies the defaults.
type Config struct {
	order      Order
	emptyRules bool
	indent     string
}

type Option func(c *Config) error

func newConfig(options ...Option) (*Config, error) {
	c := &Config{
		order:      ParentFirst,
		emptyRules: true,
		indent:     "    ",
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithOrder sets the emission order.
func WithOrder(order Order) Option {
	return func(c *Config) error {
		switch order {
		case ParentFirst, ChildrenFirst:
			c.order = order
			return nil
		}
		return fmt.Errorf("invalid order %d", int(order))
	}
}

// WithEmptyRules controls whether blocks without declarations produce an
// empty rule. The default is true.
func WithEmptyRules(flag bool) Option {
	return func(c *Config) error {
		c.emptyRules = flag
		return nil
	}
}

// WithIndent sets the declaration indent. It must be spaces or tabs.
func WithIndent(indent string) Option {
	return func(c *Config) error {
		for _, ch := range indent {
			if ch != ' ' && ch != '\t' {
				return fmt.Errorf("invalid indent %q", indent)
			}
		}
		c.indent = indent
		return nil
	}
}

// Settings returns a canonical description of the compiler version and the
// settings the options produce. Option lists that render the same text have
// equal settings.
func Settings(options ...Option) (string, error) {
	c, err := newConfig(options...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("flatcss=%s order=%s empty-rules=%t indent=%q", version.Core(), c.order, c.emptyRules, c.indent), nil
}
