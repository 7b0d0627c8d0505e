package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

var suspiciousNames = map[string]bool{
	"foo":  true,
	"bar":  true,
	"baz":  true,
	"tmp":  true,
	"data": true,
	"test": true,
}

// conventional loop counters
var allowedSingleLetter = map[string]bool{"i": true, "j": true, "k": true}

// IsSuspiciousName reports whether name is a placeholder-style name or a
// single character other than i, j or k. Matching is exact.
func IsSuspiciousName(name string) bool {
	if suspiciousNames[name] {
		return true
	}
	return utf8.RuneCountInString(name) == 1 && !allowedSingleLetter[name]
}

// DetectBadNaming reports every identifier or property name occurrence with
// a suspicious name.
func DetectBadNaming(root syntax.Node) []Issue {
	var issues []Issue
	syntax.Walk(root, func(n syntax.Node, _ int) bool {
		if !n.Kind().IsName() || !syntax.IsLeaf(n) {
			return true
		}
		name := strings.TrimSpace(n.Text())
		if IsSuspiciousName(name) {
			issues = append(issues, newIssue(BadNaming, n.Range(), "Suspicious variable name: \"%s\"", name))
		}
		return true
	})
	return issues
}
