package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

// LoadKDL loads dir/.smellscan.kdl. It returns nil, nil when the file does
// not exist.
func LoadKDL(dir string) (*Config, error) {
	path := filepath.Join(dir, KDLFileName)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, newReadError(path, err)
	}

	cfg, err := parseKDL(string(content), dir)
	if err != nil {
		return nil, err
	}
	resolveRoot(cfg, dir)
	return cfg, nil
}

// fileDefaults is the starting point for a parsed config file: the built-in
// defaults with the project left for resolveRoot.
func fileDefaults() *Config {
	cfg := Default("")
	cfg.Project = Project{}
	return cfg
}

// kdlBlocks maps each top-level node name to the function applying it.
// Unknown nodes are ignored.
var kdlBlocks = map[string]func(*Config, *document.Node){
	"version": func(cfg *Config, n *document.Node) {
		if v, ok := intArg(n); ok {
			cfg.Version = v
		}
	},
	"project":     applyProjectNode,
	"detectors":   applyDetectorsNode,
	"scan":        applyScanNode,
	"performance": applyPerformanceNode,
	"watch": func(cfg *Config, n *document.Node) {
		setChildInt(n, "debounce_ms", &cfg.Watch.DebounceMs)
	},
	"include": func(cfg *Config, n *document.Node) {
		cfg.Include = append(cfg.Include, stringArgs(n)...)
	},
	// An exclude block replaces the default exclusions.
	"exclude": func(cfg *Config, n *document.Node) {
		cfg.Exclude = stringArgs(n)
	},
}

// parseKDL reads a smellscan KDL document:
//
//	project { root "."; name "web" }
//	detectors {
//	    enabled "dead-code" "complexity"
//	    long_function { threshold 40 }
//	    complexity { warn_at 12; note_at 6 }
//	}
//	scan { max_file_size "2MB"; include "src/**"; exclude "**/gen/**" }
//	performance { workers 4; cache_entries 500 }
//	watch { debounce_ms 250 }
func parseKDL(content string, source string) (*Config, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, serrors.NewConfigError("kdl", source, fmt.Errorf("failed to parse KDL config: %w", err))
	}

	cfg := fileDefaults()
	for _, n := range doc.Nodes {
		if apply, ok := kdlBlocks[nodeName(n)]; ok {
			apply(cfg, n)
		}
	}
	return cfg, nil
}

func applyProjectNode(cfg *Config, n *document.Node) {
	setChildString(n, "root", &cfg.Project.Root)
	setChildString(n, "name", &cfg.Project.Name)
}

func applyDetectorsNode(cfg *Config, n *document.Node) {
	d := &cfg.Detectors
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "enabled":
			d.Enabled = stringArgs(cn)
		case "long_function":
			setChildInt(cn, "threshold", &d.LongFunction.Threshold)
		case "deep_nesting":
			setChildInt(cn, "threshold", &d.DeepNesting.Threshold)
		case "duplicate_code":
			setChildInt(cn, "min_lines", &d.DuplicateCode.MinLines)
			setChildInt(cn, "min_chars", &d.DuplicateCode.MinChars)
		case "duplicate_blocks":
			setChildInt(cn, "min_statements", &d.DuplicateBlocks.MinStatements)
		case "complexity":
			setChildInt(cn, "warn_at", &d.Complexity.WarnAt)
			setChildInt(cn, "note_at", &d.Complexity.NoteAt)
		}
	}
}

func applyScanNode(cfg *Config, n *document.Node) {
	setChildBool(n, "follow_symlinks", &cfg.Scan.FollowSymlinks)
	setChildBool(n, "respect_gitignore", &cfg.Scan.RespectGitignore)
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "max_file_size":
			applyMaxFileSize(cfg, cn)
		case "include":
			cfg.Include = append(cfg.Include, stringArgs(cn)...)
		case "exclude":
			cfg.Exclude = stringArgs(cn)
		}
	}
}

// applyMaxFileSize accepts a byte count or a size string such as "2MB".
func applyMaxFileSize(cfg *Config, n *document.Node) {
	if v, ok := intArg(n); ok {
		cfg.Scan.MaxFileSize = int64(v)
		return
	}
	s, ok := stringArg(n)
	if !ok {
		return
	}
	size, err := parseSize(s)
	if err != nil {
		log.Printf("WARNING: invalid max_file_size %q in KDL config: %v", s, err)
		return
	}
	cfg.Scan.MaxFileSize = size
}

func applyPerformanceNode(cfg *Config, n *document.Node) {
	setChildInt(n, "workers", &cfg.Performance.Workers)
	setChildInt(n, "cache_entries", &cfg.Performance.CacheEntries)
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

// firstArg is the value of n's first positional argument, or nil.
func firstArg(n *document.Node) interface{} {
	if len(n.Arguments) == 0 {
		return nil
	}
	return n.Arguments[0].Value
}

func intArg(n *document.Node) (int, bool) {
	switch v := firstArg(n).(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func stringArg(n *document.Node) (string, bool) {
	s, ok := firstArg(n).(string)
	return s, ok
}

// setChildInt sets *dst from the child of n named key. A non-integer value
// is logged and *dst keeps its default.
func setChildInt(n *document.Node, key string, dst *int) {
	for _, cn := range n.Children {
		if nodeName(cn) != key {
			continue
		}
		v, ok := intArg(cn)
		if !ok {
			log.Printf("WARNING: invalid integer value for '%s.%s' in KDL config", nodeName(n), key)
			continue
		}
		*dst = v
	}
}

func setChildBool(n *document.Node, key string, dst *bool) {
	for _, cn := range n.Children {
		if nodeName(cn) != key {
			continue
		}
		if b, ok := firstArg(cn).(bool); ok {
			*dst = b
		}
	}
}

func setChildString(n *document.Node, key string, dst *string) {
	for _, cn := range n.Children {
		if nodeName(cn) != key {
			continue
		}
		if s, ok := stringArg(cn); ok {
			*dst = s
		}
	}
}

// stringArgs accepts both `exclude "a" "b"` and the block form
// `exclude { "a"; "b" }`, where each string is a child node name.
func stringArgs(n *document.Node) []string {
	var out []string
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, child := range n.Children {
		if s, ok := stringArg(child); ok {
			out = append(out, s)
		} else if child.Name != nil {
			if s, ok := child.Name.Value.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// sizeUnits is ordered so that "B" is tried after the longer suffixes.
var sizeUnits = []struct {
	suffix string
	scale  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// parseSize reads "10MB", "500kb", "1GB", "64B" or a bare byte count.
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	scale := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			s, scale = strings.TrimSuffix(s, u.suffix), u.scale
			break
		}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return n * scale, nil
}
