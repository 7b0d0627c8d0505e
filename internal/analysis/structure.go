package analysis

import (
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// Default thresholds.
const (
	DefaultLongFunctionThreshold = 30
	DefaultNestingThreshold      = 3
)

// DetectLongFunctions reports named functions and methods whose body spans
// more than threshold rows. The span is End.Row - Start.Row of the body;
// functions without a body are skipped.
func DetectLongFunctions(root syntax.Node, threshold int) []Issue {
	var issues []Issue
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		if !n.Kind().IsNamedFunction() {
			return true
		}
		body := n.ChildByField("body")
		if body == nil {
			return true
		}
		if lines := body.Range().Lines(); lines > threshold {
			issues = append(issues, newIssue(LongFunction, n.Range(), "Function too long (%d lines)", lines))
		}
		return true
	})
	return issues
}

// DetectDeepNesting reports every nesting construct whose depth exceeds
// threshold. Depth counts the nesting constructs on the path from root to
// the node, the node included.
func DetectDeepNesting(root syntax.Node, threshold int) []Issue {
	if root == nil {
		return nil
	}
	type frame struct {
		n     syntax.Node
		depth int
	}
	var issues []Issue
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		depth := f.depth
		if f.n.Kind().IsNesting() {
			depth++
			if depth > threshold {
				issues = append(issues, newIssue(DeepNesting, f.n.Range(), "Code is nested too deeply (%d levels)", depth))
			}
		}
		kids := f.n.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], depth})
		}
	}
	return issues
}

// DetectDeadCode reports statements that follow a return, throw, break or
// continue within the same block. Each block is scanned on its own; there is
// no reachability analysis across branches.
func DetectDeadCode(root syntax.Node) []Issue {
	var issues []Issue
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		if !n.Kind().IsBlock() {
			return true
		}
		unreachable := false
		for _, stmt := range n.NamedChildren() {
			if stmt.Kind() == syntax.KindComment {
				continue
			}
			if unreachable {
				issues = append(issues, newIssue(DeadCode, stmt.Range(), "Unreachable code detected"))
			}
			if exits(stmt) {
				unreachable = true
			}
		}
		return true
	})
	return issues
}

// exits reports a block exit, also when an expression-oriented grammar
// wraps it as the sole content of an expression statement.
func exits(stmt syntax.Node) bool {
	if stmt.Kind().IsExit() {
		return true
	}
	if stmt.Kind() != syntax.KindExpressionStatement {
		return false
	}
	var inner syntax.Node
	for _, c := range stmt.NamedChildren() {
		if c.Kind() == syntax.KindComment {
			continue
		}
		if inner != nil {
			return false
		}
		inner = c
	}
	return inner != nil && inner.Kind().IsExit()
}
