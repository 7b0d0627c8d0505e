package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/standardbeagle/smellscan/internal/analysis"
	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults
// Returns an error if validation fails
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return serrors.NewConfigError("project", cfg.Project.Root, err)
	}

	if err := v.validateDetectorsConfig(&cfg.Detectors); err != nil {
		return serrors.NewConfigError("detectors", "", err)
	}

	if err := v.validateScanConfig(&cfg.Scan); err != nil {
		return serrors.NewConfigError("scan", strconv.FormatInt(cfg.Scan.MaxFileSize, 10), err)
	}

	if err := v.validatePerformanceConfig(&cfg.Performance); err != nil {
		return serrors.NewConfigError("performance", strconv.Itoa(cfg.Performance.Workers), err)
	}

	if cfg.Watch.DebounceMs < 0 {
		return serrors.NewConfigError("watch", strconv.Itoa(cfg.Watch.DebounceMs),
			fmt.Errorf("DebounceMs cannot be negative, got %d", cfg.Watch.DebounceMs))
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateDetectorsConfig(d *Detectors) error {
	positive := []struct {
		name  string
		value int
	}{
		{"long_function.threshold", d.LongFunction.Threshold},
		{"deep_nesting.threshold", d.DeepNesting.Threshold},
		{"duplicate_code.min_lines", d.DuplicateCode.MinLines},
		{"duplicate_code.min_chars", d.DuplicateCode.MinChars},
		{"duplicate_blocks.min_statements", d.DuplicateBlocks.MinStatements},
		{"complexity.warn_at", d.Complexity.WarnAt},
		{"complexity.note_at", d.Complexity.NoteAt},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}

	if d.Complexity.NoteAt > d.Complexity.WarnAt {
		return fmt.Errorf("complexity.note_at (%d) cannot exceed complexity.warn_at (%d)", d.Complexity.NoteAt, d.Complexity.WarnAt)
	}

	// Only exact names and aliases; near misses get a suggestion.
	for _, name := range d.Enabled {
		r := analysis.ResolveDetector(name)
		switch r.MatchType {
		case "exact", "alias":
		case "none":
			return fmt.Errorf("unknown detector %q (valid: %v)", name, analysis.DetectorNames())
		default:
			return fmt.Errorf("unknown detector %q (did you mean %q?)", name, r.Kind.String())
		}
	}
	return nil
}

func (v *Validator) validateScanConfig(scan *Scan) error {
	if scan.MaxFileSize <= 0 {
		return fmt.Errorf("MaxFileSize must be positive, got %d", scan.MaxFileSize)
	}

	if scan.MaxFileSize > MaxAllowedFileSize {
		return fmt.Errorf("MaxFileSize should not exceed 100MB, got %d", scan.MaxFileSize)
	}

	return nil
}

func (v *Validator) validatePerformanceConfig(perf *Performance) error {
	// Workers: 0 means auto-detect (will be set by smart defaults)
	if perf.Workers < 0 {
		return fmt.Errorf("Workers cannot be negative, got %d", perf.Workers)
	}
	if perf.CacheEntries < 0 {
		return fmt.Errorf("CacheEntries cannot be negative, got %d", perf.CacheEntries)
	}
	return nil
}

// setSmartDefaults applies defaults that depend on the host.
func (v *Validator) setSmartDefaults(cfg *Config) {
	// cores-1 leaves one core for the OS, minimum of 1
	if cfg.Performance.Workers == 0 {
		cfg.Performance.Workers = max(1, runtime.NumCPU()-1)
	}

	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = DefaultWatchDebounceMs
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
