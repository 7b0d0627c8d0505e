package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/parser"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

func detectorsCommand(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, d := range analysis.Detectors() {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Description)
	}
	return tw.Flush()
}

func languagesCommand(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, lang := range syntax.Languages() {
		fmt.Fprintf(tw, "%s\t%s\n", lang, strings.Join(parser.Extensions(lang), " "))
	}
	return tw.Flush()
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c, ".")
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func configValidateCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c, ".")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "configuration is valid (root %s, %d include, %d exclude patterns)\n",
		cfg.Project.Root, len(cfg.Include), len(cfg.Exclude))
	return nil
}
