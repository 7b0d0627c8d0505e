// Package report renders scan results for terminals and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/scan"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// Output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatCompact = "compact"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatCompact}
}

// FormatterOptions controls report formatting
type FormatterOptions struct {
	Format        string // "text", "json", "compact"
	ShowLocations bool   // List every occurrence of multi-location issues
	ShowSummary   bool   // Append the per-kind summary to text output
	Indent        string // JSON indentation
}

// Formatter renders file reports
type Formatter struct {
	options FormatterOptions
}

// NewFormatter creates a formatter. An unknown format falls back to text.
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &Formatter{options: options}
}

// ValidFormat reports whether name is one of Formats.
func ValidFormat(name string) bool {
	for _, f := range Formats() {
		if f == name {
			return true
		}
	}
	return false
}

// Format renders reports in the configured format.
func (f *Formatter) Format(reports []scan.FileReport) (string, error) {
	switch f.options.Format {
	case FormatJSON:
		return f.formatJSON(reports)
	case FormatCompact:
		return f.formatCompact(reports), nil
	default:
		return f.formatText(reports), nil
	}
}

// Write renders reports to w.
func (f *Formatter) Write(w io.Writer, reports []scan.FileReport) error {
	out, err := f.Format(reports)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// position renders a zero-based position as the one-based line:column that
// editors expect.
func position(p syntax.Position) string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Column+1)
}

// formatText writes one line per issue:
//
//	src/app.js:12:3: Unreachable code detected (dead-code)
func (f *Formatter) formatText(reports []scan.FileReport) string {
	var sb strings.Builder

	for _, r := range reports {
		if r.Failed() {
			fmt.Fprintf(&sb, "%s: error: %s\n", r.Path, r.Error)
			continue
		}
		if r.Partial {
			fmt.Fprintf(&sb, "%s: warning: syntax errors recovered, results may be incomplete\n", r.Path)
		}
		for _, is := range r.Issues {
			fmt.Fprintf(&sb, "%s:%s: %s (%s)\n", r.Path, position(is.Start), is.Message, is.Kind)
			if f.options.ShowLocations && len(is.Locations) > 1 {
				for _, loc := range is.Locations {
					fmt.Fprintf(&sb, "    at %s:%s\n", r.Path, position(loc.Start))
				}
			}
		}
	}

	if f.options.ShowSummary {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Summarize(reports).String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatCompact writes one histogram line per file with issues:
//
//	src/app.js: dead-code=1 cyclomatic-complexity=3
func (f *Formatter) formatCompact(reports []scan.FileReport) string {
	var sb strings.Builder

	for _, r := range reports {
		if r.Failed() {
			fmt.Fprintf(&sb, "%s: error\n", r.Path)
			continue
		}
		if len(r.Issues) == 0 {
			continue
		}
		counts := analysis.CountByKind(r.Issues)
		parts := make([]string, 0, len(counts))
		for _, kind := range analysis.IssueKinds() {
			if n := counts[kind]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
			}
		}
		fmt.Fprintf(&sb, "%s: %s\n", r.Path, strings.Join(parts, " "))
	}
	return sb.String()
}

// Response is the JSON document shape.
type Response struct {
	Results []scan.FileReport `json:"results"`
}

func (f *Formatter) formatJSON(reports []scan.FileReport) (string, error) {
	if reports == nil {
		reports = []scan.FileReport{}
	}
	data, err := json.MarshalIndent(Response{Results: reports}, "", f.options.Indent)
	if err != nil {
		return "", fmt.Errorf("encode json report: %w", err)
	}
	return string(data) + "\n", nil
}
