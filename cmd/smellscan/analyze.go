package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/config"
	"github.com/standardbeagle/smellscan/internal/report"
	"github.com/standardbeagle/smellscan/internal/scan"
	"github.com/standardbeagle/smellscan/pkg/pathutil"
)

// thresholdFlags are shared by analyze and watch.
func thresholdFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "long-function-threshold", Usage: "Body lines before a function is reported as long"},
		&cli.IntFlag{Name: "nesting-threshold", Usage: "Nesting depth before a block is reported"},
		&cli.IntFlag{Name: "min-duplicate-lines", Usage: "Minimum lines for a duplicated function"},
		&cli.IntFlag{Name: "min-duplicate-chars", Usage: "Minimum characters for a duplicated function"},
		&cli.IntFlag{Name: "min-block-statements", Usage: "Minimum statements for a duplicated block"},
		&cli.IntFlag{Name: "complexity-warn", Usage: "Cyclomatic complexity rated high"},
		&cli.IntFlag{Name: "complexity-note", Usage: "Cyclomatic complexity rated moderate"},
	}
}

// applyDetectorOverrides copies threshold flags and --only into cfg. The
// --only names are stored in canonical form so the validator accepts
// prefixes and near misses that the resolver already settled.
func applyDetectorOverrides(c *cli.Context, cfg *config.Config) error {
	d := &cfg.Detectors
	ints := []struct {
		flag string
		dst  *int
	}{
		{"long-function-threshold", &d.LongFunction.Threshold},
		{"nesting-threshold", &d.DeepNesting.Threshold},
		{"min-duplicate-lines", &d.DuplicateCode.MinLines},
		{"min-duplicate-chars", &d.DuplicateCode.MinChars},
		{"min-block-statements", &d.DuplicateBlocks.MinStatements},
		{"complexity-warn", &d.Complexity.WarnAt},
		{"complexity-note", &d.Complexity.NoteAt},
	}
	for _, i := range ints {
		if c.IsSet(i.flag) {
			*i.dst = c.Int(i.flag)
		}
	}

	only := c.String("only")
	if only == "" {
		return nil
	}
	kinds, warnings, err := analysis.ResolveDetectors(only)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	for _, w := range warnings {
		fmt.Fprintf(c.App.ErrWriter, "warning: %s\n", w)
	}
	d.Enabled = make([]string, len(kinds))
	for i, k := range kinds {
		d.Enabled[i] = k.String()
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func outputFormat(c *cli.Context) (string, error) {
	format := c.String("format")
	if c.Bool("json") {
		format = report.FormatJSON
	}
	if !report.ValidFormat(format) {
		return "", cli.Exit(fmt.Sprintf("unknown format %q (valid: %s)", format, strings.Join(report.Formats(), ", ")), exitUsage)
	}
	return format, nil
}

// failKinds parses --fail-on. "any" matches every detector; nil means the
// exit status does not depend on findings.
func failKinds(value string) ([]analysis.IssueKind, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return nil, nil
	case "any", "all":
		return analysis.IssueKinds(), nil
	}
	kinds, _, err := analysis.ResolveDetectors(value)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("--fail-on: %v", err), exitUsage)
	}
	return kinds, nil
}

func analyzeCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c, ".")
	if err != nil {
		return err
	}
	format, err := outputFormat(c)
	if err != nil {
		return err
	}
	failOn, err := failKinds(c.String("fail-on"))
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		paths = []string{cfg.Project.Root}
	}

	ctx, stop := signalContext(c.Context)
	defer stop()

	reports, err := scan.New(scan.OptionsFromConfig(cfg)).Run(ctx, paths)
	if err != nil {
		return err
	}

	out := reports
	if c.Bool("relative") {
		out = pathutil.ToRelativeReports(reports, cfg.Project.Root)
	}
	formatter := report.NewFormatter(report.FormatterOptions{
		Format:        format,
		ShowLocations: c.Bool("locations"),
		ShowSummary:   c.Bool("summary"),
	})
	if err := formatter.Write(c.App.Writer, out); err != nil {
		return err
	}

	if len(failOn) > 0 && report.Summarize(reports).Count(failOn...) > 0 {
		return cli.Exit("", exitIssues)
	}
	return nil
}
