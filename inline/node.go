package inline

import (
	"fmt"
	"strings"
)

// Kind identifies an inline element.
type Kind int

const (
	KindPlain Kind = iota
	KindStrong
	KindEmphasis
	KindCode
	KindMath
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindStrong:
		return "Strong"
	case KindEmphasis:
		return "Emphasis"
	case KindCode:
		return "Code"
	case KindMath:
		return "Math"
	case KindReference:
		return "Reference"
	}
	return "Plain"
}

// Node is an inline element of a text leaf.
type Node interface {
	Kind() Kind
	String() string
}

var (
	_ Node = (*Plain)(nil)
	_ Node = (*Strong)(nil)
	_ Node = (*Emphasis)(nil)
	_ Node = (*Code)(nil)
	_ Node = (*Math)(nil)
	_ Node = (*Reference)(nil)
)

// Plain is unformatted text with escapes already resolved.
type Plain struct {
	Text string
}

func (p *Plain) Kind() Kind     { return KindPlain }
func (p *Plain) String() string { return fmt.Sprintf("Plain(%q)", p.Text) }

// Strong is *text*.
type Strong struct {
	Content []Node
}

func (s *Strong) Kind() Kind     { return KindStrong }
func (s *Strong) String() string { return "Strong" + listString(s.Content) }

// Emphasis is _text_.
type Emphasis struct {
	Content []Node
}

func (e *Emphasis) Kind() Kind     { return KindEmphasis }
func (e *Emphasis) String() string { return "Emphasis" + listString(e.Content) }

// Code is `text`. Its content is literal.
type Code struct {
	Text string
}

func (c *Code) Kind() Kind     { return KindCode }
func (c *Code) String() string { return fmt.Sprintf("Code(%q)", c.Text) }

// Math is #formula#. Its content is literal.
type Math struct {
	Text string
}

func (m *Math) Kind() Kind     { return KindMath }
func (m *Math) String() string { return fmt.Sprintf("Math(%q)", m.Text) }

func listString(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Walk calls fn for every node in nodes, depth first.
func Walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		fn(n)
		switch n := n.(type) {
		case *Strong:
			Walk(n.Content, fn)
		case *Emphasis:
			Walk(n.Content, fn)
		}
	}
}

// References collects every reference in nodes.
func References(nodes []Node) []*Reference {
	var out []*Reference
	Walk(nodes, func(n Node) {
		if r, ok := n.(*Reference); ok {
			out = append(out, r)
		}
	})
	return out
}
