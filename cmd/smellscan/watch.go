package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/smellscan/internal/report"
	"github.com/standardbeagle/smellscan/internal/scan"
	"github.com/standardbeagle/smellscan/internal/watch"
	"github.com/standardbeagle/smellscan/pkg/pathutil"
)

// batchPrinter writes watch batches; the mutex serializes the initial pass
// with batches arriving from the watcher goroutine.
type batchPrinter struct {
	mu        sync.Mutex
	out       io.Writer
	root      string
	formatter *report.Formatter
}

func (p *batchPrinter) print(b watch.Batch) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range pathutil.ToRelativePaths(b.Removed, p.root) {
		fmt.Fprintf(p.out, "%s: removed\n", path)
	}
	if len(b.Reports) == 0 {
		return
	}
	if err := p.formatter.Write(p.out, pathutil.ToRelativeReports(b.Reports, p.root)); err != nil {
		fmt.Fprintf(p.out, "error: %v\n", err)
	}
}

func watchCommand(c *cli.Context) error {
	root := "."
	if c.NArg() > 0 {
		root = c.Args().First()
	}
	cfg, err := loadConfigWithOverrides(c, root)
	if err != nil {
		return err
	}
	format, err := outputFormat(c)
	if err != nil {
		return err
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	if c.IsSet("debounce") {
		debounce = time.Duration(c.Int("debounce")) * time.Millisecond
	}

	ctx, stop := signalContext(c.Context)
	defer stop()

	scanner := scan.New(scan.OptionsFromConfig(cfg))
	printer := &batchPrinter{
		out:       c.App.Writer,
		root:      cfg.Project.Root,
		formatter: report.NewFormatter(report.FormatterOptions{Format: format, ShowLocations: true}),
	}

	initial, err := scanner.Run(ctx, []string{cfg.Project.Root})
	if err != nil {
		return err
	}
	printer.print(watch.Batch{Reports: initial})

	w, err := watch.New(scanner, debounce, printer.print)
	if err != nil {
		return err
	}
	if err := w.Start(ctx, cfg.Project.Root); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "watching %s (debounce %s), press Ctrl+C to stop\n", cfg.Project.Root, debounce)

	<-ctx.Done()
	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	stats := w.Stats()
	cs := scanner.CacheStats()
	fmt.Fprintf(c.App.ErrWriter, "stopped after %d events in %d batches (cache: %d hits, %d misses)\n",
		stats.EventsProcessed, stats.Batches, cs.Hits, cs.Misses)
	return nil
}
