package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/smellscan/internal/parser"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

type astOutput struct {
	Filename string           `json:"filename"`
	Language syntax.Language  `json:"language"`
	Partial  bool             `json:"partial,omitempty"`
	Tree     *syntax.DumpNode `json:"tree"`
}

func astCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("ast requires exactly one file", exitUsage)
	}
	path := c.Args().First()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lang syntax.Language
	if name := c.String("language"); name != "" {
		lang, err = parser.ParseLanguage(name)
	} else {
		lang, err = parser.DetectLanguage(path)
	}
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	file, err := parser.Parse(lang, content)
	if err != nil {
		return err
	}
	defer file.Close()

	out := astOutput{
		Filename: path,
		Language: lang,
		Partial:  file.HasErrors(),
		Tree:     syntax.Dump(file.Root(), c.Int("depth")),
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
