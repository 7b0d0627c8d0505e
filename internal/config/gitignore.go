package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadGitignore reads rootPath/.gitignore and returns its patterns as
// doublestar exclusion globs. A missing file yields nil.
func LoadGitignore(rootPath string) []string {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}
	defer file.Close()

	patterns, _ := ParseGitignore(file)
	return patterns
}

// ParseGitignore converts gitignore lines to exclusion globs. Negated
// patterns cannot be expressed as exclusions and are skipped.
func ParseGitignore(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		out = append(out, gitignoreGlobs(line)...)
	}
	return out, scanner.Err()
}

// gitignoreGlobs maps one pattern. A leading or inner slash anchors it to
// the root; a trailing slash restricts it to directories.
func gitignoreGlobs(p string) []string {
	directory := strings.HasSuffix(p, "/")
	p = strings.TrimSuffix(p, "/")
	anchored := strings.Contains(p, "/")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	if !anchored && !strings.HasPrefix(p, "**/") {
		p = "**/" + p
	}
	if directory {
		return []string{p + "/**"}
	}
	return []string{p, p + "/**"}
}
