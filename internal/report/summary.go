package report

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/scan"
)

// Summary totals a set of file reports.
type Summary struct {
	Files           int                        `json:"files"`
	FilesWithIssues int                        `json:"files_with_issues"`
	FailedFiles     int                        `json:"failed_files"`
	Issues          int                        `json:"issues"`
	ByKind          map[analysis.IssueKind]int `json:"by_kind"`
}

// Summarize counts issues per kind across reports.
func Summarize(reports []scan.FileReport) Summary {
	s := Summary{Files: len(reports), ByKind: make(map[analysis.IssueKind]int)}
	for _, r := range reports {
		if r.Failed() {
			s.FailedFiles++
			continue
		}
		if len(r.Issues) > 0 {
			s.FilesWithIssues++
		}
		for kind, n := range analysis.CountByKind(r.Issues) {
			s.ByKind[kind] += n
			s.Issues += n
		}
	}
	return s
}

// Count returns the number of issues of the given kinds. With no kinds it
// returns the total.
func (s Summary) Count(kinds ...analysis.IssueKind) int {
	if len(kinds) == 0 {
		return s.Issues
	}
	n := 0
	for _, k := range kinds {
		n += s.ByKind[k]
	}
	return n
}

// String renders the summary as a short paragraph, kinds in detector order.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d issues in %d of %d files", s.Issues, s.FilesWithIssues, s.Files)
	if s.FailedFiles > 0 {
		fmt.Fprintf(&sb, " (%d failed)", s.FailedFiles)
	}
	for _, kind := range analysis.IssueKinds() {
		if n := s.ByKind[kind]; n > 0 {
			fmt.Fprintf(&sb, "\n  %-22s %d", kind, n)
		}
	}
	return sb.String()
}
