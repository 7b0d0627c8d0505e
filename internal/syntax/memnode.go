package syntax

import "strings"

// MemNode is an in-memory Node. It backs synthetic trees and detached copies
// of parsed trees.
type MemNode struct {
	NodeType string
	NodeKind Kind
	Span     Range
	// Anonymous marks punctuation and keyword tokens.
	Anonymous bool
	// Field is the name this node is reachable by from its parent.
	Field   string
	Content string
	Kids    []*MemNode
}

// Leaf builds a named leaf with text.
func Leaf(typ string, kind Kind, text string, at Position) *MemNode {
	end := at
	end.Column += uint32(len(text))
	return &MemNode{NodeType: typ, NodeKind: kind, Content: text, Span: Range{Start: at, End: end}}
}

// Token builds an anonymous leaf whose text equals its type.
func Token(typ string, at Position) *MemNode {
	n := Leaf(typ, KindOther, typ, at)
	n.Anonymous = true
	return n
}

// Branch builds a named composite node spanning its children.
func Branch(typ string, kind Kind, kids ...*MemNode) *MemNode {
	n := &MemNode{NodeType: typ, NodeKind: kind, Kids: kids}
	if len(kids) > 0 {
		n.Span = Range{Start: kids[0].Span.Start, End: kids[len(kids)-1].Span.End}
	}
	return n
}

// WithField sets the field name of n and returns it.
func (m *MemNode) WithField(name string) *MemNode {
	m.Field = name
	return m
}

func (m *MemNode) Kind() Kind   { return m.NodeKind }
func (m *MemNode) Type() string { return m.NodeType }
func (m *MemNode) Range() Range { return m.Span }

func (m *MemNode) Children() []Node {
	if len(m.Kids) == 0 {
		return nil
	}
	out := make([]Node, len(m.Kids))
	for i, k := range m.Kids {
		out[i] = k
	}
	return out
}

func (m *MemNode) NamedChildren() []Node {
	var out []Node
	for _, k := range m.Kids {
		if !k.Anonymous {
			out = append(out, k)
		}
	}
	return out
}

func (m *MemNode) ChildByField(name string) Node {
	for _, k := range m.Kids {
		if k.Field == name {
			return k
		}
	}
	return nil
}

// Text returns Content when set, otherwise the children's text joined by
// single spaces.
func (m *MemNode) Text() string {
	if m.Content != "" || len(m.Kids) == 0 {
		return m.Content
	}
	parts := make([]string, 0, len(m.Kids))
	for _, k := range m.Kids {
		if t := k.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
