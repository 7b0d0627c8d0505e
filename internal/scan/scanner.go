// Package scan discovers source files in a workspace and runs the analyzer
// over them in parallel.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/cache"
	"github.com/standardbeagle/smellscan/internal/config"
	"github.com/standardbeagle/smellscan/internal/debug"
	serrors "github.com/standardbeagle/smellscan/internal/errors"
	"github.com/standardbeagle/smellscan/internal/parser"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// ErrNoLanguage is returned by AnalyzeSource when neither a language nor a
// filename with a known extension is given.
var ErrNoLanguage = errors.New("filename or language is required")

// Options configures a Scanner.
type Options struct {
	// Include and Exclude are doublestar globs matched against paths
	// relative to the walked root, in slash form.
	Include        []string
	Exclude        []string
	MaxFileSize    int64
	FollowSymlinks bool
	// Workers bounds parallel analysis. Zero uses NumCPU.
	Workers int
	// CacheEntries bounds the content-keyed result cache. Zero disables it.
	CacheEntries int
	Analysis     analysis.Options
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default(""))
}

// OptionsFromConfig extracts scanner options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		MaxFileSize:    cfg.Scan.MaxFileSize,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
		Workers:        cfg.Performance.Workers,
		CacheEntries:   cfg.Performance.CacheEntries,
		Analysis:       cfg.AnalysisOptions(),
	}
}

// FileReport is the analysis result for one file. Suggestions holds the
// issue messages in issue order.
type FileReport struct {
	Path        string           `json:"filename"`
	Language    syntax.Language  `json:"language,omitempty"`
	Suggestions []string         `json:"suggestions"`
	Issues      []analysis.Issue `json:"issues"`
	// Partial is set when the grammar recovered from syntax errors.
	Partial bool   `json:"partial,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// Failed reports whether the file could not be analyzed.
func (r FileReport) Failed() bool {
	return r.Err != nil
}

func (r *FileReport) fail(err error) {
	r.Err = err
	r.Error = err.Error()
}

// Scanner walks workspaces and analyzes the files it finds. It is safe for
// concurrent use.
type Scanner struct {
	opts      Options
	parser    *parser.Parser
	analyzer  *analysis.Analyzer
	validator *FileValidator
	results   *cache.ResultCache[cachedResult]
}

// cachedResult is what the cache keeps per content; reports are rebuilt
// from it.
type cachedResult struct {
	issues  []analysis.Issue
	partial bool
}

// New builds a Scanner.
func New(opts Options) *Scanner {
	s := &Scanner{
		opts:      opts,
		parser:    parser.New(),
		analyzer:  analysis.New(opts.Analysis),
		validator: NewFileValidator(opts.MaxFileSize),
	}
	if opts.CacheEntries > 0 {
		s.results = cache.New[cachedResult](cache.Config{MaxEntries: opts.CacheEntries})
	}
	return s
}

// CacheStats returns the result cache counters; all zero when caching is
// disabled.
func (s *Scanner) CacheStats() cache.Stats {
	if s.results == nil {
		return cache.Stats{}
	}
	return s.results.Stats()
}

// Options returns the scanner's options.
func (s *Scanner) Options() Options {
	return s.opts
}

// Analyzer returns the analyzer applied to every file.
func (s *Scanner) Analyzer() *analysis.Analyzer {
	return s.analyzer
}

// Matches reports whether a root-relative slash path passes the include and
// exclude globs and has a supported extension.
func (s *Scanner) Matches(rel string) bool {
	if !parser.IsSupported(rel) {
		return false
	}
	return s.included(rel) && !s.excluded(rel)
}

func (s *Scanner) included(rel string) bool {
	if len(s.opts.Include) == 0 {
		return true
	}
	return matchAny(s.opts.Include, rel)
}

func (s *Scanner) excluded(rel string) bool {
	return matchAny(s.opts.Exclude, rel)
}

// ExcludesDir reports whether a root-relative directory is skipped: hidden
// directories always are. Directory patterns are written as "dir/**", so the
// trailing "/**" is dropped and the remainder is matched against the
// directory itself.
func (s *Scanner) ExcludesDir(rel string) bool {
	if isHidden(path.Base(rel)) {
		return true
	}
	for _, pattern := range s.opts.Exclude {
		if matched, err := doublestar.Match(strings.TrimSuffix(pattern, "/**"), rel); err == nil && matched {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// a bad pattern shouldn't break scanning
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}

// Discover expands roots into the sorted list of files to analyze.
// Directories are walked, skipping hidden and excluded directories; files
// named explicitly bypass the globs but must still have a supported
// extension. Roots that cannot be read are reported together once the
// others have been walked.
func (s *Scanner) Discover(ctx context.Context, roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	var missing []error
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			missing = append(missing, serrors.NewFileError("discover", root, err))
			continue
		}
		if !info.IsDir() {
			if parser.IsSupported(root) {
				add(filepath.Clean(root))
			}
			continue
		}
		if err := s.walk(ctx, root, add); err != nil {
			return nil, err
		}
	}

	if err := serrors.NewMultiError(missing).ErrOrNil(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	debug.LogScan("discovered %d files under %v", len(files), roots)
	return files, nil
}

func (s *Scanner) walk(ctx context.Context, root string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return serrors.NewFileError("walk", path, err)
			}
			debug.LogScan("skipping %s: %v", path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && s.ExcludesDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !s.opts.FollowSymlinks {
				return nil
			}
			// Linked files are followed; linked directories are not walked.
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if s.Matches(rel) {
			add(path)
		}
		return nil
	})
}

// Run discovers the files under paths and analyzes them.
func (s *Scanner) Run(ctx context.Context, paths []string) ([]FileReport, error) {
	files, err := s.Discover(ctx, paths)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeFiles(ctx, files)
}

// AnalyzeFiles analyzes files in parallel and returns one report per file,
// in input order. Per-file failures are recorded on the reports; only
// cancellation aborts the run.
func (s *Scanner) AnalyzeFiles(ctx context.Context, files []string) ([]FileReport, error) {
	if len(files) == 0 {
		return nil, nil
	}

	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	results := make([]FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = s.AnalyzeFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	debug.LogScan("analyzed %d files with %d workers in %v", len(files), workers, time.Since(start))
	return results, nil
}

// AnalyzeFile validates, reads, parses and analyzes one file.
func (s *Scanner) AnalyzeFile(path string) FileReport {
	report := FileReport{Path: path}

	lang, err := parser.DetectLanguage(path)
	if err != nil {
		report.fail(serrors.NewParseError("", path, err))
		return report
	}
	report.Language = lang

	if _, err := s.validator.CheckSize(path); err != nil {
		report.fail(err)
		return report
	}
	content, err := os.ReadFile(path)
	if err != nil {
		report.fail(serrors.NewFileError("read", path, err))
		return report
	}
	if err := s.validator.CheckContent(path, content); err != nil {
		report.fail(err)
		return report
	}

	s.analyze(&report, lang, content)
	return report
}

// AnalyzeSource analyzes in-memory code. language takes precedence; when it
// is empty the language is detected from filename.
func (s *Scanner) AnalyzeSource(filename, language string, code []byte) (FileReport, error) {
	report := FileReport{Path: filename}

	var lang syntax.Language
	var err error
	switch {
	case language != "":
		lang, err = parser.ParseLanguage(language)
	case filename != "":
		lang, err = parser.DetectLanguage(filename)
	default:
		err = ErrNoLanguage
	}
	if err != nil {
		return report, serrors.NewParseError(language, filename, err)
	}
	report.Language = lang

	s.analyze(&report, lang, code)
	if report.Err != nil {
		return report, report.Err
	}
	return report, nil
}

func (s *Scanner) analyze(report *FileReport, lang syntax.Language, content []byte) {
	var key string
	if s.results != nil {
		key = cache.Key(string(lang), content)
		if hit, ok := s.results.Get(key); ok {
			report.Partial = hit.partial
			report.Issues = hit.issues
			report.Suggestions = analysis.Messages(hit.issues)
			return
		}
	}

	f, err := s.parser.Parse(lang, content)
	if err != nil {
		report.fail(err)
		return
	}
	defer f.Close()

	report.Partial = f.HasErrors()
	issues, err := s.analyzer.Analyze(f.Root())
	if err != nil {
		report.fail(fmt.Errorf("analyze %s: %w", displayName(report.Path), err))
		return
	}
	if issues == nil {
		issues = []analysis.Issue{}
	}
	report.Issues = issues
	report.Suggestions = analysis.Messages(issues)
	if s.results != nil {
		s.results.Put(key, cachedResult{issues: issues, partial: report.Partial})
	}
}

func displayName(path string) string {
	if path == "" {
		return "<memory>"
	}
	return path
}
