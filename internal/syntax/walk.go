package syntax

// Visitor is called for each node in pre-order with its depth below the
// walk root. Returning false skips the node's children.
type Visitor func(n Node, depth int) bool

// Walk visits root and its descendants in document order using an explicit
// stack, so arbitrarily deep trees are safe. A nil root visits nothing.
func Walk(root Node, visit Visitor) {
	if root == nil {
		return
	}
	type frame struct {
		n     Node
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(f.n, f.depth) {
			continue
		}
		kids := f.n.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
	}
}

// Collect returns every node in root's subtree, root included, for which
// keep reports true, in document order.
func Collect(root Node, keep func(Node) bool) []Node {
	var out []Node
	Walk(root, func(n Node, _ int) bool {
		if keep(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// DumpNode is the JSON shape of a dumped tree.
type DumpNode struct {
	Type     string      `json:"type"`
	Kind     string      `json:"kind,omitempty"`
	Start    Position    `json:"start"`
	End      Position    `json:"end"`
	Text     string      `json:"text,omitempty"`
	Children []*DumpNode `json:"children,omitempty"`
}

// Dump converts a tree to DumpNodes. Leaves carry their text; composites
// carry their children. maxDepth <= 0 means unlimited.
func Dump(root Node, maxDepth int) *DumpNode {
	if root == nil {
		return nil
	}
	type item struct {
		src   Node
		dst   *DumpNode
		depth int
	}
	convert := func(n Node) *DumpNode {
		r := n.Range()
		d := &DumpNode{Type: n.Type(), Start: r.Start, End: r.End}
		if k := n.Kind(); k != KindOther {
			d.Kind = k.String()
		}
		if IsLeaf(n) {
			d.Text = n.Text()
		}
		return d
	}
	out := convert(root)
	stack := []item{{root, out, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if maxDepth > 0 && it.depth >= maxDepth {
			continue
		}
		kids := it.src.Children()
		it.dst.Children = make([]*DumpNode, len(kids))
		for i, c := range kids {
			d := convert(c)
			it.dst.Children[i] = d
			stack = append(stack, item{c, d, it.depth + 1})
		}
	}
	return out
}
