package analysis

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

// placeholder returns the token a node collapses to in a canonical shape,
// or "" when the node renders structurally.
func placeholder(k syntax.Kind) string {
	switch k {
	case syntax.KindIdentifier, syntax.KindPropertyIdentifier, syntax.KindShorthandPropertyIdentifier:
		return "ID"
	case syntax.KindNumber:
		return "NUM"
	case syntax.KindString, syntax.KindStringFragment, syntax.KindTemplateString, syntax.KindTemplateSubstitution:
		return "STR"
	case syntax.KindBoolean:
		return "BOOL"
	case syntax.KindNull:
		return "NULL"
	}
	return ""
}

// emitItem is either a node to render or literal text to write.
type emitItem struct {
	node syntax.Node
	lit  string
}

// Canonicalize renders the structural shape of n. Names and literal values
// collapse to placeholders; any other leaf renders as its grammar type, so
// operators and punctuation stay literal; composites render as
// type(child,child,...). Two subtrees that differ only by renaming or by
// literal values have the same shape.
func Canonicalize(n syntax.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	stack := []emitItem{{node: n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.node == nil {
			b.WriteString(it.lit)
			continue
		}
		if p := placeholder(it.node.Kind()); p != "" {
			b.WriteString(p)
			continue
		}
		kids := it.node.Children()
		b.WriteString(it.node.Type())
		if len(kids) == 0 {
			continue
		}
		b.WriteByte('(')
		stack = append(stack, emitItem{lit: ")"})
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, emitItem{node: kids[i]})
			if i > 0 {
				stack = append(stack, emitItem{lit: ","})
			}
		}
	}
	return b.String()
}

// Serialize renders the leaf sequence of n, comma-joined: plain identifiers
// become ID and every other leaf renders as its grammar type. Composites add
// nothing of their own and literal kinds are not collapsed, so property
// names and literal forms still distinguish blocks.
func Serialize(n syntax.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	stack := []emitItem{{node: n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.node == nil {
			b.WriteString(it.lit)
			continue
		}
		if it.node.Kind() == syntax.KindIdentifier {
			b.WriteString("ID")
			continue
		}
		kids := it.node.Children()
		if len(kids) == 0 {
			b.WriteString(it.node.Type())
			continue
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, emitItem{node: kids[i]})
			if i > 0 {
				stack = append(stack, emitItem{lit: ","})
			}
		}
	}
	return b.String()
}

// shapeGroups groups values by exact string key in first-occurrence order.
// Keys are bucketed by digest and compared in full on collision.
type shapeGroups[T any] struct {
	buckets map[uint64][]int
	keys    []string
	members [][]T
}

func newShapeGroups[T any]() *shapeGroups[T] {
	return &shapeGroups[T]{buckets: make(map[uint64][]int)}
}

func (g *shapeGroups[T]) add(key string, v T) {
	h := xxhash.Sum64String(key)
	for _, idx := range g.buckets[h] {
		if g.keys[idx] == key {
			g.members[idx] = append(g.members[idx], v)
			return
		}
	}
	g.buckets[h] = append(g.buckets[h], len(g.keys))
	g.keys = append(g.keys, key)
	g.members = append(g.members, []T{v})
}

// each calls fn for every group with at least minSize members, in order.
func (g *shapeGroups[T]) each(minSize int, fn func(members []T)) {
	for _, m := range g.members {
		if len(m) >= minSize {
			fn(m)
		}
	}
}
