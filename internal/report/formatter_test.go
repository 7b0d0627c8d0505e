package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/scan"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

func at(row, col uint32) syntax.Range {
	return syntax.Range{
		Start: syntax.Position{Row: row, Column: col},
		End:   syntax.Position{Row: row, Column: col + 4},
	}
}

func sampleReports() []scan.FileReport {
	dup := analysis.Issue{
		Kind:      analysis.DuplicateCode,
		Message:   "Duplicate code detected in 2 places (similar function bodies).",
		Range:     at(0, 0),
		Locations: []syntax.Range{at(0, 0), at(5, 0)},
	}
	dead := analysis.Issue{Kind: analysis.DeadCode, Message: "Unreachable code detected", Range: at(2, 2)}
	cc := analysis.Issue{Kind: analysis.CyclomaticComplexity, Message: "Function 'a' has cyclomatic complexity 1 (low)", Range: at(0, 0)}

	failure := errors.New("file size 10 exceeds limit 5")
	return []scan.FileReport{
		{
			Path:        "src/a.js",
			Language:    syntax.JavaScript,
			Issues:      []analysis.Issue{dup, dead, cc},
			Suggestions: analysis.Messages([]analysis.Issue{dup, dead, cc}),
		},
		{Path: "src/clean.js", Language: syntax.JavaScript, Issues: []analysis.Issue{}, Suggestions: []string{}},
		{Path: "src/big.js", Language: syntax.JavaScript, Err: failure, Error: failure.Error()},
	}
}

func TestFormatter_Text(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: FormatText, ShowLocations: true}).Format(sampleReports())
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"src/a.js:1:1: Duplicate code detected in 2 places (similar function bodies). (duplicate-code)",
		"    at src/a.js:1:1",
		"    at src/a.js:6:1",
		"src/a.js:3:3: Unreachable code detected (dead-code)",
		"src/a.js:1:1: Function 'a' has cyclomatic complexity 1 (low) (cyclomatic-complexity)",
		"src/big.js: error: file size 10 exceeds limit 5",
		"",
	}, "\n"), out)
}

func TestFormatter_TextSummaryAndPartial(t *testing.T) {
	reports := []scan.FileReport{{Path: "x.js", Partial: true, Issues: []analysis.Issue{}}}
	out, err := NewFormatter(FormatterOptions{ShowSummary: true}).Format(reports)
	require.NoError(t, err)
	assert.Equal(t, "x.js: warning: syntax errors recovered, results may be incomplete\n\n0 issues in 0 of 1 files\n", out)
}

func TestFormatter_Compact(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: FormatCompact}).Format(sampleReports())
	require.NoError(t, err)
	assert.Equal(t, "src/a.js: duplicate-code=1 dead-code=1 cyclomatic-complexity=1\nsrc/big.js: error\n", out)
}

func TestFormatter_JSON(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: FormatJSON}).Format(sampleReports())
	require.NoError(t, err)

	var doc struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Results, 3)

	first := doc.Results[0]
	assert.Equal(t, "src/a.js", first["filename"])
	assert.Equal(t, "javascript", first["language"])
	assert.Len(t, first["suggestions"], 3)

	issues := first["issues"].([]any)
	require.Len(t, issues, 3)
	dup := issues[0].(map[string]any)
	assert.Equal(t, "duplicate-code", dup["type"])
	assert.Equal(t, map[string]any{"row": 0.0, "column": 0.0}, dup["start"])
	assert.Len(t, dup["locations"], 2)
	assert.NotContains(t, issues[1].(map[string]any), "locations")

	clean := doc.Results[1]
	assert.Equal(t, []any{}, clean["issues"])
	assert.NotContains(t, clean, "error")

	assert.Equal(t, "file size 10 exceeds limit 5", doc.Results[2]["error"])
}

func TestFormatter_JSONEmpty(t *testing.T) {
	out, err := NewFormatter(FormatterOptions{Format: FormatJSON}).Format(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, out)
}

func TestFormatter_Write(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, NewFormatter(FormatterOptions{Format: FormatCompact}).Write(&sb, sampleReports()))
	assert.Contains(t, sb.String(), "src/a.js: ")
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats() {
		assert.True(t, ValidFormat(f), f)
	}
	assert.False(t, ValidFormat("xml"))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReports())
	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 1, s.FilesWithIssues)
	assert.Equal(t, 1, s.FailedFiles)
	assert.Equal(t, 3, s.Issues)
	assert.Equal(t, 1, s.ByKind[analysis.DeadCode])
	assert.Equal(t, 2, s.Count(analysis.DeadCode, analysis.DuplicateCode))
	assert.Equal(t, 3, s.Count())
	assert.Zero(t, s.Count(analysis.BadNaming))

	assert.Equal(t, strings.Join([]string{
		"3 issues in 1 of 3 files (1 failed)",
		"  duplicate-code         1",
		"  dead-code              1",
		"  cyclomatic-complexity  1",
	}, "\n"), s.String())
}
