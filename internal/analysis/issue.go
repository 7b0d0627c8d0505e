// Package analysis implements the code smell detectors that run over a
// single syntax tree, and the Analyzer that composes them.
//
// Every detector is a pure function of a tree and its thresholds. Detectors
// share no state, traverse with explicit stacks and may run concurrently on
// different trees.
package analysis

import (
	"fmt"

	"github.com/standardbeagle/smellscan/internal/syntax"
)

// IssueKind identifies the detector that produced an issue.
type IssueKind uint8

const (
	LongFunction IssueKind = iota
	DeepNesting
	DuplicateCode
	DuplicateCodeBlock
	DeadCode
	BadNaming
	CyclomaticComplexity

	issueKindCount
)

var issueKindNames = [issueKindCount]string{
	LongFunction:         "long-function",
	DeepNesting:          "deep-nesting",
	DuplicateCode:        "duplicate-code",
	DuplicateCodeBlock:   "duplicate-code-block",
	DeadCode:             "dead-code",
	BadNaming:            "bad-naming",
	CyclomaticComplexity: "cyclomatic-complexity",
}

// IssueKinds returns every kind in detector order.
func IssueKinds() []IssueKind {
	out := make([]IssueKind, issueKindCount)
	for i := range out {
		out[i] = IssueKind(i)
	}
	return out
}

func (k IssueKind) String() string {
	if k < issueKindCount {
		return issueKindNames[k]
	}
	return fmt.Sprintf("IssueKind(%d)", uint8(k))
}

// ParseIssueKind maps a canonical name such as "dead-code" to its kind.
func ParseIssueKind(s string) (IssueKind, bool) {
	for i, name := range issueKindNames {
		if name == s {
			return IssueKind(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the kind as its canonical name.
func (k IssueKind) MarshalText() ([]byte, error) {
	if k >= issueKindCount {
		return nil, fmt.Errorf("invalid issue kind %d", uint8(k))
	}
	return []byte(issueKindNames[k]), nil
}

// UnmarshalText decodes a canonical name.
func (k *IssueKind) UnmarshalText(b []byte) error {
	parsed, ok := ParseIssueKind(string(b))
	if !ok {
		return fmt.Errorf("unknown issue kind %q", b)
	}
	*k = parsed
	return nil
}

// Issue is one finding. The embedded Range is the primary location;
// Locations lists every occurrence for issues that span several.
type Issue struct {
	Kind    IssueKind `json:"type"`
	Message string    `json:"message"`
	syntax.Range
	Locations []syntax.Range `json:"locations,omitempty"`
}

func newIssue(kind IssueKind, at syntax.Range, format string, args ...any) Issue {
	return Issue{Kind: kind, Message: fmt.Sprintf(format, args...), Range: at}
}

// Messages returns the message of every issue, in order.
func Messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

// CountByKind tallies issues per kind.
func CountByKind(issues []Issue) map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, is := range issues {
		counts[is.Kind]++
	}
	return counts
}
