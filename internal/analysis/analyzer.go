package analysis

import (
	"errors"
	"time"

	"github.com/standardbeagle/smellscan/internal/debug"
	serrors "github.com/standardbeagle/smellscan/internal/errors"
	"github.com/standardbeagle/smellscan/internal/syntax"
)

// ErrNilTree is wrapped by the AnalysisError returned for a missing tree.
var ErrNilTree = errors.New("nil syntax tree")

// Options configures an Analyzer. Zero thresholds take their defaults.
type Options struct {
	LongFunctionThreshold int
	NestingThreshold      int
	Duplicate             DuplicateOptions
	BlockMinStatements    int
	Complexity            ComplexityOptions
	// Enabled restricts the detectors that run. Empty runs all of them.
	Enabled []IssueKind
}

// DefaultOptions returns every threshold at its default with all detectors
// enabled.
func DefaultOptions() Options {
	return Options{
		LongFunctionThreshold: DefaultLongFunctionThreshold,
		NestingThreshold:      DefaultNestingThreshold,
		Duplicate:             DefaultDuplicateOptions(),
		BlockMinStatements:    DefaultBlockMinStatements,
		Complexity:            DefaultComplexityOptions(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LongFunctionThreshold <= 0 {
		o.LongFunctionThreshold = d.LongFunctionThreshold
	}
	if o.NestingThreshold <= 0 {
		o.NestingThreshold = d.NestingThreshold
	}
	if o.Duplicate.MinLines <= 0 {
		o.Duplicate.MinLines = d.Duplicate.MinLines
	}
	if o.Duplicate.MinChars <= 0 {
		o.Duplicate.MinChars = d.Duplicate.MinChars
	}
	if o.BlockMinStatements <= 0 {
		o.BlockMinStatements = d.BlockMinStatements
	}
	if o.Complexity.WarnAt <= 0 {
		o.Complexity.WarnAt = d.Complexity.WarnAt
	}
	if o.Complexity.NoteAt <= 0 {
		o.Complexity.NoteAt = d.Complexity.NoteAt
	}
	return o
}

type detector struct {
	kind IssueKind
	run  func(syntax.Node) []Issue
}

// Analyzer runs a fixed, ordered set of detectors over one tree at a time.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	opts      Options
	detectors []detector
}

// New builds an Analyzer. Detectors always run in IssueKinds order,
// whatever the order of opts.Enabled.
func New(opts Options) *Analyzer {
	opts = opts.withDefaults()
	enabled := make(map[IssueKind]bool, len(opts.Enabled))
	for _, k := range opts.Enabled {
		enabled[k] = true
	}

	all := []detector{
		{LongFunction, func(n syntax.Node) []Issue { return DetectLongFunctions(n, opts.LongFunctionThreshold) }},
		{DeepNesting, func(n syntax.Node) []Issue { return DetectDeepNesting(n, opts.NestingThreshold) }},
		{DuplicateCode, func(n syntax.Node) []Issue { return DetectDuplicateCode(n, opts.Duplicate) }},
		{DuplicateCodeBlock, func(n syntax.Node) []Issue { return DetectDuplicateBlocks(n, opts.BlockMinStatements) }},
		{DeadCode, DetectDeadCode},
		{BadNaming, DetectBadNaming},
		{CyclomaticComplexity, func(n syntax.Node) []Issue { return DetectCyclomaticComplexity(n, opts.Complexity) }},
	}

	a := &Analyzer{opts: opts}
	for _, d := range all {
		if len(enabled) == 0 || enabled[d.kind] {
			a.detectors = append(a.detectors, d)
		}
	}
	return a
}

// Options returns the effective options, defaults applied.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Enabled returns the kinds of the detectors that run, in order.
func (a *Analyzer) Enabled() []IssueKind {
	out := make([]IssueKind, len(a.detectors))
	for i, d := range a.detectors {
		out[i] = d.kind
	}
	return out
}

// Analyze runs every enabled detector over root and concatenates their
// issues in detector order. A nil root is the only error.
func (a *Analyzer) Analyze(root syntax.Node) ([]Issue, error) {
	if root == nil {
		return nil, serrors.NewAnalysisError("analyze", ErrNilTree)
	}
	var issues []Issue
	for _, d := range a.detectors {
		start := time.Now()
		found := d.run(root)
		debug.LogAnalysis("%s: %d issues in %v", d.kind, len(found), time.Since(start))
		issues = append(issues, found...)
	}
	return issues, nil
}

var defaultAnalyzer = New(DefaultOptions())

// Analyze runs every detector with default thresholds.
func Analyze(root syntax.Node) ([]Issue, error) {
	return defaultAnalyzer.Analyze(root)
}
