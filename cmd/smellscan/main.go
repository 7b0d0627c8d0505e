package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/smellscan/internal/config"
	"github.com/standardbeagle/smellscan/internal/debug"
	"github.com/standardbeagle/smellscan/internal/report"
	"github.com/standardbeagle/smellscan/internal/version"
)

// loadConfigWithOverrides loads configuration for root and applies the
// global CLI flag overrides, then validates the result.
func loadConfigWithOverrides(c *cli.Context, root string) (*config.Config, error) {
	if rootFlag := c.String("root"); rootFlag != "" {
		root = rootFlag
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	configPath := c.String("config")
	cfg, err := config.LoadWithRoot(configPath, absRoot)
	if err != nil {
		if configPath == "" {
			return nil, fmt.Errorf("failed to load config for %s: %w", absRoot, err)
		}
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = config.DeduplicatePatterns(append(cfg.Exclude, excludeFlags...))
	}
	if c.IsSet("workers") {
		cfg.Performance.Workers = c.Int("workers")
	}
	if c.String("root") != "" || configPath == "" {
		cfg.Project.Root = absRoot
	}

	if err := applyDetectorOverrides(c, cfg); err != nil {
		return nil, err
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, cli.Exit(fmt.Sprintf("invalid configuration: %v", err), exitUsage)
	}
	return cfg, nil
}

// Exit codes
const (
	exitIssues = 1
	exitUsage  = 2
)

func newApp() *cli.App {
	return &cli.App{
		Name:                   "smellscan",
		Usage:                  "Detect code smells in source trees",
		Version:                version.FullInfo(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml); default looks for .smellscan.kdl/.smellscan.toml in the root",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (e.g., --include 'src/**')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (e.g., --exclude '**/fixtures/**')",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Parallel workers (0 = CPU count - 1)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output on stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.EnableDebug = "true"
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Aliases:   []string{"a"},
				Usage:     "Analyze files and directories",
				ArgsUsage: "[paths...]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format: %v", report.Formats()),
						Value:   report.FormatText,
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON (same as --format json)",
					},
					&cli.StringFlag{
						Name:    "only",
						Aliases: []string{"o"},
						Usage:   "Comma-separated detectors to run (names, aliases or prefixes)",
					},
					&cli.StringFlag{
						Name:  "fail-on",
						Usage: "Exit with status 1 when issues of these detectors are found ('any' for all)",
					},
					&cli.BoolFlag{
						Name:  "locations",
						Usage: "List every occurrence of duplicate code",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "Print a per-detector summary after text output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "relative",
						Usage: "Print paths relative to the project root",
					},
				}, thresholdFlags()...),
				Action: analyzeCommand,
			},
			{
				Name:      "watch",
				Usage:     "Re-analyze files as they change",
				ArgsUsage: "[root]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format: %v", report.Formats()),
						Value:   report.FormatText,
					},
					&cli.StringFlag{
						Name:    "only",
						Aliases: []string{"o"},
						Usage:   "Comma-separated detectors to run",
					},
					&cli.IntFlag{
						Name:  "debounce",
						Usage: "Debounce window in milliseconds (overrides config)",
					},
				}, thresholdFlags()...),
				Action: watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the analyzer as MCP tools over stdio",
				Action: mcpCommand,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of a file as JSON",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Maximum depth to print (0 = unlimited)",
					},
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Language name, overrides detection from the file extension",
					},
				},
				Action: astCommand,
			},
			{
				Name:   "detectors",
				Usage:  "List the available detectors",
				Action: detectorsCommand,
			},
			{
				Name:   "languages",
				Usage:  "List the supported languages and their file extensions",
				Action: languagesCommand,
			},
			{
				Name:  "config",
				Usage: "Configuration helpers",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the effective configuration as TOML",
						Action: configShowCommand,
					},
					{
						Name:   "validate",
						Usage:  "Validate the configuration",
						Action: configValidateCommand,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
}
