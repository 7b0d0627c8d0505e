package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// DetectorInfo describes one detector for listings.
type DetectorInfo struct {
	Kind        IssueKind `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

var detectorDescriptions = [issueKindCount]string{
	LongFunction:         "Named functions and methods whose body spans more lines than the threshold",
	DeepNesting:          "Conditionals, loops, switch and try/catch nested deeper than the threshold",
	DuplicateCode:        "Function bodies with the same shape after renaming and literal changes",
	DuplicateCodeBlock:   "Functions and blocks repeated verbatim apart from identifier names",
	DeadCode:             "Statements after a return, throw, break or continue in the same block",
	BadNaming:            "Placeholder names (foo, tmp, data...) and single letters other than i, j, k",
	CyclomaticComplexity: "Per-function McCabe complexity with a low/moderate/high label",
}

// Detectors lists every detector in run order.
func Detectors() []DetectorInfo {
	out := make([]DetectorInfo, 0, issueKindCount)
	for _, k := range IssueKinds() {
		out = append(out, DetectorInfo{Kind: k, Name: k.String(), Description: detectorDescriptions[k]})
	}
	return out
}

// Resolution is the outcome of resolving a user-supplied detector name.
type Resolution struct {
	Original  string
	Kind      IssueKind
	Resolved  bool
	MatchType string // "exact", "alias", "prefix", "fuzzy", "none"
	Warning   string
}

var detectorAliases = map[string]IssueKind{
	"long":        LongFunction,
	"length":      LongFunction,
	"nesting":     DeepNesting,
	"nested":      DeepNesting,
	"dup":         DuplicateCode,
	"dups":        DuplicateCode,
	"duplicates":  DuplicateCode,
	"blocks":      DuplicateCodeBlock,
	"dead":        DeadCode,
	"unreachable": DeadCode,
	"naming":      BadNaming,
	"names":       BadNaming,
	"complexity":  CyclomaticComplexity,
	"cc":          CyclomaticComplexity,
	"mccabe":      CyclomaticComplexity,
}

// ResolveDetector maps input to a detector.
// Resolution priority: exact match > alias > prefix > fuzzy
func ResolveDetector(input string) Resolution {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if normalized == "" {
		return Resolution{Original: input, MatchType: "none"}
	}

	if k, ok := ParseIssueKind(normalized); ok {
		return Resolution{Original: input, Kind: k, Resolved: true, MatchType: "exact"}
	}

	if k, ok := detectorAliases[normalized]; ok {
		return Resolution{Original: input, Kind: k, Resolved: true, MatchType: "alias"}
	}

	// min 3 chars to avoid ambiguity
	if len(normalized) >= 3 {
		for _, k := range IssueKinds() {
			if strings.HasPrefix(k.String(), normalized) {
				return Resolution{
					Original:  input,
					Kind:      k,
					Resolved:  true,
					MatchType: "prefix",
					Warning:   fmt.Sprintf("'%s' interpreted as '%s' (prefix match)", input, k),
				}
			}
		}
	}

	best, distance := closestDetector(normalized)
	if distance > 0 && distance <= 2 {
		return Resolution{
			Original:  input,
			Kind:      best,
			Resolved:  true,
			MatchType: "fuzzy",
			Warning:   fmt.Sprintf("'%s' interpreted as '%s' (did you mean '%s'?)", input, best, best),
		}
	}

	return Resolution{
		Original:  input,
		MatchType: "none",
		Warning:   fmt.Sprintf("unknown detector '%s'", input),
	}
}

// closestDetector compares against canonical names and aliases alike.
func closestDetector(input string) (IssueKind, int) {
	var best IssueKind
	bestDistance := 1000
	consider := func(candidate string, k IssueKind) {
		if d := edlib.LevenshteinDistance(input, candidate); d < bestDistance {
			bestDistance = d
			best = k
		}
	}
	for _, k := range IssueKinds() {
		consider(k.String(), k)
	}
	for _, alias := range sortedAliases() {
		consider(alias, detectorAliases[alias])
	}
	return best, bestDistance
}

func sortedAliases() []string {
	out := make([]string, 0, len(detectorAliases))
	for a := range detectorAliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// ResolveDetectors resolves a comma-separated list, dropping duplicates.
// It returns the resolved kinds in input order, any warnings, and an error
// naming every input that did not resolve.
func ResolveDetectors(input string) ([]IssueKind, []string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil, nil
	}

	var (
		kinds    []IssueKind
		warnings []string
		unknown  []string
	)
	seen := make(map[IssueKind]bool)
	for _, item := range strings.Split(input, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		r := ResolveDetector(trimmed)
		if !r.Resolved {
			unknown = append(unknown, trimmed)
			continue
		}
		if !seen[r.Kind] {
			kinds = append(kinds, r.Kind)
			seen[r.Kind] = true
		}
		if r.Warning != "" {
			warnings = append(warnings, r.Warning)
		}
	}
	if len(unknown) > 0 {
		return kinds, warnings, fmt.Errorf("unknown detector(s): %s (valid: %s)", strings.Join(unknown, ", "), strings.Join(DetectorNames(), ", "))
	}
	return kinds, warnings, nil
}

// DetectorNames returns the canonical detector names in run order.
func DetectorNames() []string {
	out := make([]string, 0, issueKindCount)
	for _, k := range IssueKinds() {
		out = append(out, k.String())
	}
	return out
}
