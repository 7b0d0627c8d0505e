package analysis

import (
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// DuplicateOptions bounds which function bodies take part in duplicate
// detection.
type DuplicateOptions struct {
	// MinLines is the minimum row span of a body.
	MinLines int
	// MinChars is the minimum length of a body's canonical shape.
	MinChars int
}

// DefaultDuplicateOptions returns MinLines 4, MinChars 40.
func DefaultDuplicateOptions() DuplicateOptions {
	return DuplicateOptions{MinLines: 4, MinChars: 40}
}

// DefaultBlockMinStatements is the default named-child count a block needs
// to be compared by DetectDuplicateBlocks.
const DefaultBlockMinStatements = 2

// DetectDuplicateCode groups function-like nodes whose bodies have the same
// canonical shape. Each group of two or more yields one issue at its first
// member, listing every member as a location.
func DetectDuplicateCode(root syntax.Node, opts DuplicateOptions) []Issue {
	groups := newShapeGroups[syntax.Node]()
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		if !n.Kind().IsFunctionLike() {
			return true
		}
		body := n.ChildByField("body")
		if body == nil {
			body = n
		}
		if body.Range().Lines() < opts.MinLines {
			return true
		}
		shape := Canonicalize(body)
		if len(shape) < opts.MinChars {
			return true
		}
		groups.add(shape, n)
		return true
	})

	var issues []Issue
	groups.each(2, func(members []syntax.Node) {
		locs := make([]syntax.Range, len(members))
		for i, m := range members {
			locs[i] = m.Range()
		}
		is := newIssue(DuplicateCode, locs[0], "Duplicate code detected in %d places (similar function bodies).", len(members))
		is.Locations = locs
		issues = append(issues, is)
	})
	return issues
}

// DetectDuplicateBlocks groups named functions, methods and statement blocks
// with at least minStatements named children by their literal serialization.
// Every member of a group of two or more yields its own issue.
//
// A function can match a block nested in an unrelated function when their
// serializations coincide.
func DetectDuplicateBlocks(root syntax.Node, minStatements int) []Issue {
	groups := newShapeGroups[syntax.Node]()
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		k := n.Kind()
		if !k.IsNamedFunction() && k != syntax.KindStatementBlock {
			return true
		}
		if len(n.NamedChildren()) < minStatements {
			return true
		}
		groups.add(Serialize(n), n)
		return true
	})

	var issues []Issue
	groups.each(2, func(members []syntax.Node) {
		for _, m := range members {
			issues = append(issues, newIssue(DuplicateCodeBlock, m.Range(), "Duplicate code block detected (%d occurrences)", len(members)))
		}
	})
	return issues
}
