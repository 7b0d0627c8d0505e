package syntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsNode adapts a tree-sitter node. The source buffer and the tree the node
// belongs to must outlive it.
type tsNode struct {
	n     *tree_sitter.Node
	src   []byte
	vocab *Vocabulary
}

// FromTreeSitter wraps a tree-sitter node, classifying it with vocab.
// It returns nil for a nil node.
func FromTreeSitter(n *tree_sitter.Node, src []byte, vocab *Vocabulary) Node {
	if n == nil {
		return nil
	}
	return &tsNode{n: n, src: src, vocab: vocab}
}

func (t *tsNode) Kind() Kind {
	k := t.vocab.KindOf(t.n.Kind())
	// Anonymous tokens share type strings with named nodes ("function",
	// "lambda"); only operator tokens carry a meaningful kind.
	if !t.n.IsNamed() && k != KindLogicalOperator {
		return KindOther
	}
	return k
}

func (t *tsNode) Type() string {
	return t.n.Kind()
}

func (t *tsNode) Range() Range {
	s, e := t.n.StartPosition(), t.n.EndPosition()
	return Range{
		Start: Position{Row: uint32(s.Row), Column: uint32(s.Column)},
		End:   Position{Row: uint32(e.Row), Column: uint32(e.Column)},
	}
}

func (t *tsNode) Children() []Node {
	count := t.n.ChildCount()
	if count == 0 {
		return nil
	}
	out := make([]Node, 0, count)
	for i := uint(0); i < count; i++ {
		if c := t.n.Child(i); c != nil {
			out = append(out, &tsNode{n: c, src: t.src, vocab: t.vocab})
		}
	}
	return out
}

func (t *tsNode) NamedChildren() []Node {
	count := t.n.NamedChildCount()
	if count == 0 {
		return nil
	}
	out := make([]Node, 0, count)
	for i := uint(0); i < count; i++ {
		if c := t.n.NamedChild(i); c != nil {
			out = append(out, &tsNode{n: c, src: t.src, vocab: t.vocab})
		}
	}
	return out
}

func (t *tsNode) ChildByField(name string) Node {
	c := t.n.ChildByFieldName(name)
	if c == nil {
		return nil
	}
	return &tsNode{n: c, src: t.src, vocab: t.vocab}
}

func (t *tsNode) Text() string {
	return t.n.Utf8Text(t.src)
}
