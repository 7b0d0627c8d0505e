package analysis

import (
	"strings"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

// AnonymousFunctionName labels functions without a resolvable name.
const AnonymousFunctionName = "<anonymous>"

// ComplexityOptions sets the score boundaries of the complexity labels.
type ComplexityOptions struct {
	// WarnAt is the lowest score labelled high.
	WarnAt int
	// NoteAt is the lowest score labelled moderate.
	NoteAt int
}

// DefaultComplexityOptions returns WarnAt 10, NoteAt 5.
func DefaultComplexityOptions() ComplexityOptions {
	return ComplexityOptions{WarnAt: 10, NoteAt: 5}
}

// Label classifies a score as "high", "moderate" or "low".
func (o ComplexityOptions) Label(score int) string {
	switch {
	case score >= o.WarnAt:
		return "high"
	case score >= o.NoteAt:
		return "moderate"
	default:
		return "low"
	}
}

// DetectCyclomaticComplexity reports the complexity of every function-like
// node with a body, whatever the score.
func DetectCyclomaticComplexity(root syntax.Node, opts ComplexityOptions) []Issue {
	var issues []Issue
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		if !n.Kind().IsFunctionLike() {
			return true
		}
		body := n.ChildByField("body")
		if body == nil {
			return true
		}
		score := ComplexityScore(body)
		issues = append(issues, newIssue(CyclomaticComplexity, n.Range(),
			"Function '%s' has cyclomatic complexity %d (%s)", functionName(n), score, opts.Label(score)))
		return true
	})
	return issues
}

// ComplexityScore scores a function body: 1 plus one per decision
// point. Conditionals, loops, catch clauses, ternaries, case and default
// labels and logical and/or operators are decision points; a switch itself
// adds nothing beyond its labels.
func ComplexityScore(body syntax.Node) int {
	score := 1
	syntax.Walk(body, func(n syntax.Node, _ int) bool {
		if isDecisionPoint(n.Kind()) {
			score++
		}
		return true
	})
	return score
}

func isDecisionPoint(k syntax.Kind) bool {
	switch k {
	case syntax.KindIf, syntax.KindElseIf,
		syntax.KindCatch, syntax.KindTernary,
		syntax.KindSwitchCase, syntax.KindSwitchDefault,
		syntax.KindLogicalOperator:
		return true
	}
	return k.IsLoop()
}

func functionName(n syntax.Node) string {
	for _, field := range []string{"name", "key"} {
		if c := n.ChildByField(field); c != nil {
			if name := strings.TrimSpace(c.Text()); name != "" {
				return name
			}
		}
	}
	return AnonymousFunctionName
}
