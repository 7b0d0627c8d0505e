// Package syntax defines the read-only view of a parsed syntax tree that the
// analysis detectors are written against.
//
// Grammar-specific type strings never leave this package: every node exposes
// its raw grammar Type for display and canonical rendering, and a Kind that
// a per-language Vocabulary derives from that string. Detectors branch on
// Kind only.
package syntax

import "fmt"

// Position is a zero-based row/column location in source text.
type Position struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Column < o.Column
}

// String renders the position 1-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Column+1)
}

// Range is a half-open span of source text.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether r covers o.
func (r Range) Contains(o Range) bool {
	return !o.Start.Before(r.Start) && !r.End.Before(o.End)
}

// Lines returns the exclusive row span End.Row - Start.Row.
func (r Range) Lines() int {
	if r.End.Row < r.Start.Row {
		return 0
	}
	return int(r.End.Row - r.Start.Row)
}

// Node is one node of a syntax tree.
//
// Implementations must return nil (not a typed nil) from ChildByField when
// the field is absent, and empty slices for leaves.
type Node interface {
	// Kind is the language-independent classification of the node.
	Kind() Kind
	// Type is the grammar-defined tag, e.g. "if_statement" or "(".
	Type() string
	Range() Range
	// Children returns every child, punctuation included.
	Children() []Node
	// NamedChildren returns only the semantically significant children.
	NamedChildren() []Node
	ChildByField(name string) Node
	// Text returns the source text spanned by the node.
	Text() string
}

// IsLeaf reports whether n has no children. A nil node counts as a leaf.
func IsLeaf(n Node) bool {
	return n == nil || len(n.Children()) == 0
}
