package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/smellscan/internal/analysis"
	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

// Default limits shared by the file loaders and the validator.
const (
	DefaultMaxFileSize     = 1 * 1024 * 1024
	MaxAllowedFileSize     = 100 * 1024 * 1024
	DefaultWatchDebounceMs = 300
	DefaultCacheEntries    = 1000
)

// Config file names, in lookup order.
const (
	KDLFileName  = ".smellscan.kdl"
	TOMLFileName = ".smellscan.toml"
)

type Config struct {
	Version     int         `toml:"version"`
	Project     Project     `toml:"project"`
	Detectors   Detectors   `toml:"detectors"`
	Scan        Scan        `toml:"scan"`
	Performance Performance `toml:"performance"`
	Watch       Watch       `toml:"watch"`
	Include     []string    `toml:"include"`
	Exclude     []string    `toml:"exclude"`
}

type Project struct {
	Root string `toml:"root"`
	Name string `toml:"name"`
}

// Detectors selects and tunes the detectors. Enabled holds detector names
// or aliases; empty runs every detector.
type Detectors struct {
	Enabled         []string        `toml:"enabled"`
	LongFunction    Threshold       `toml:"long_function"`
	DeepNesting     Threshold       `toml:"deep_nesting"`
	DuplicateCode   DuplicateCode   `toml:"duplicate_code"`
	DuplicateBlocks DuplicateBlocks `toml:"duplicate_blocks"`
	Complexity      Complexity      `toml:"complexity"`
}

type Threshold struct {
	Threshold int `toml:"threshold"`
}

type DuplicateCode struct {
	MinLines int `toml:"min_lines"`
	MinChars int `toml:"min_chars"`
}

type DuplicateBlocks struct {
	MinStatements int `toml:"min_statements"`
}

type Complexity struct {
	WarnAt int `toml:"warn_at"`
	NoteAt int `toml:"note_at"`
}

type Scan struct {
	MaxFileSize      int64 `toml:"max_file_size"`
	FollowSymlinks   bool  `toml:"follow_symlinks"`
	RespectGitignore bool  `toml:"respect_gitignore"` // Add .gitignore patterns to the exclusions
}

type Performance struct {
	Workers      int `toml:"workers"`       // 0 = auto-detect (NumCPU-1)
	CacheEntries int `toml:"cache_entries"` // 0 disables the result cache
}

type Watch struct {
	DebounceMs int `toml:"debounce_ms"`
}

// Default returns the built-in configuration for a project rooted at root.
func Default(root string) *Config {
	d := analysis.DefaultOptions()
	cfg := &Config{
		Version: 1,
		Project: Project{Root: root, Name: filepath.Base(root)},
		Detectors: Detectors{
			LongFunction:    Threshold{Threshold: d.LongFunctionThreshold},
			DeepNesting:     Threshold{Threshold: d.NestingThreshold},
			DuplicateCode:   DuplicateCode{MinLines: d.Duplicate.MinLines, MinChars: d.Duplicate.MinChars},
			DuplicateBlocks: DuplicateBlocks{MinStatements: d.BlockMinStatements},
			Complexity:      Complexity{WarnAt: d.Complexity.WarnAt, NoteAt: d.Complexity.NoteAt},
		},
		Scan: Scan{
			MaxFileSize:      DefaultMaxFileSize,
			RespectGitignore: true,
		},
		Performance: Performance{CacheEntries: DefaultCacheEntries},
		Watch:       Watch{DebounceMs: DefaultWatchDebounceMs},
		Include:     []string{},
		Exclude:     defaultExclusions(),
	}
	return cfg
}

func defaultExclusions() []string {
	return []string{
		// Hidden directories (catch-all for dot directories)
		"**/.*/**",

		// Package managers & dependencies
		"**/node_modules/**",
		"**/vendor/**",
		"**/bower_components/**",
		"**/jspm_packages/**",
		"**/venv/**",
		"**/site-packages/**",

		// Build artifacts & output
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/target/**", // Rust, Java
		"**/bin/**",
		"**/obj/**", // .NET
		"**/*.min.js",
		"**/*.bundle.js",
		"**/*.chunk.js",

		// Generated code
		"**/*.pb.go",
		"**/*_generated.go",
		"**/*.d.ts",

		"**/__pycache__/**",
		"**/coverage/**",
	}
}

// Load finds and loads the configuration for the current directory.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

// LoadWithRoot loads configuration for the project at rootDir.
//
// An explicit path is loaded on its own and must exist. Otherwise a global
// config in the home directory is merged under the project's config file;
// with neither present the defaults apply. Build artifact directories and,
// when enabled, .gitignore patterns are appended to the exclusions.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}
	absDir, err := filepath.Abs(searchDir)
	if err != nil {
		absDir = searchDir
	}

	var cfg *Config
	if path != "" {
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	} else {
		var baseConfig *Config
		if homeDir, err := os.UserHomeDir(); err == nil && homeDir != absDir {
			if globalCfg, err := LoadDir(homeDir); err == nil && globalCfg != nil {
				baseConfig = globalCfg
			}
		}

		projectConfig, err := LoadDir(absDir)
		if err != nil {
			return nil, err
		}

		switch {
		case baseConfig != nil && projectConfig != nil:
			cfg = mergeConfigs(baseConfig, projectConfig)
		case projectConfig != nil:
			cfg = projectConfig
		case baseConfig != nil:
			baseConfig.Project.Root = absDir
			baseConfig.Project.Name = filepath.Base(absDir)
			cfg = baseConfig
		default:
			cfg = Default(absDir)
		}
	}

	cfg.EnrichExclusions()
	return cfg, nil
}

// LoadDir loads the first config file found in dir, KDL before TOML.
// It returns nil, nil when dir has neither.
func LoadDir(dir string) (*Config, error) {
	if cfg, err := LoadKDL(dir); cfg != nil || err != nil {
		return cfg, err
	}
	return LoadTOML(dir)
}

// LoadFile loads the config file at path, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newReadError(path, err)
	}
	dir := filepath.Dir(path)
	var cfg *Config
	if filepath.Ext(path) == ".toml" {
		cfg, err = parseTOML(content, dir)
	} else {
		cfg, err = parseKDL(string(content), dir)
	}
	if err != nil {
		return nil, err
	}
	resolveRoot(cfg, dir)
	return cfg, nil
}

func newReadError(path string, err error) error {
	return serrors.NewFileError("read config", path, err)
}

// resolveRoot makes the project root absolute, relative to the directory
// holding the config file.
func resolveRoot(cfg *Config, configDir string) {
	root := cfg.Project.Root
	if root == "" {
		root = configDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(configDir, root)
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	cfg.Project.Root = filepath.Clean(root)
	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(cfg.Project.Root)
	}
}

// mergeConfigs merges a base config with a project config.
// Project config takes precedence, but base exclusions are preserved.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		combined := make([]string, 0, len(base.Exclude)+len(project.Exclude))
		combined = append(combined, base.Exclude...)
		combined = append(combined, project.Exclude...)
		merged.Exclude = DeduplicatePatterns(combined)
	}

	// Inclusions and enabled detectors: project overrides base completely if specified
	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}
	if len(project.Detectors.Enabled) == 0 && len(base.Detectors.Enabled) > 0 {
		merged.Detectors.Enabled = base.Detectors.Enabled
	}

	return &merged
}

// EnrichExclusions appends build output directories detected from the
// project's language configs and, when RespectGitignore is set, the root
// .gitignore patterns.
func (c *Config) EnrichExclusions() {
	if c.Project.Root == "" {
		return
	}

	patterns := NewBuildArtifactDetector(c.Project.Root).DetectOutputDirectories()
	if c.Scan.RespectGitignore {
		patterns = append(patterns, LoadGitignore(c.Project.Root)...)
	}
	if len(patterns) > 0 {
		c.Exclude = DeduplicatePatterns(append(c.Exclude, patterns...))
	}
}

// AnalysisOptions converts the detector section into analyzer options.
// Names that do not resolve are skipped; the validator rejects them first.
func (c *Config) AnalysisOptions() analysis.Options {
	d := c.Detectors
	opts := analysis.Options{
		LongFunctionThreshold: d.LongFunction.Threshold,
		NestingThreshold:      d.DeepNesting.Threshold,
		Duplicate:             analysis.DuplicateOptions{MinLines: d.DuplicateCode.MinLines, MinChars: d.DuplicateCode.MinChars},
		BlockMinStatements:    d.DuplicateBlocks.MinStatements,
		Complexity:            analysis.ComplexityOptions{WarnAt: d.Complexity.WarnAt, NoteAt: d.Complexity.NoteAt},
	}
	seen := make(map[analysis.IssueKind]bool)
	for _, name := range d.Enabled {
		if r := analysis.ResolveDetector(name); r.Resolved && !seen[r.Kind] {
			opts.Enabled = append(opts.Enabled, r.Kind)
			seen[r.Kind] = true
		}
	}
	return opts
}

// DeduplicatePatterns removes duplicate patterns, keeping first occurrences.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
