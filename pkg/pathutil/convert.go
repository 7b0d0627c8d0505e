// Package pathutil converts the absolute paths the scanner works with into
// root-relative paths for display.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/smellscan/internal/scan"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Paths that are already relative, outside root or not convertible are
// returned unchanged.
//
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go"
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	// outside the root the absolute path is clearer
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return absPath
	}
	return relPath
}

// ToRelativeReports returns a copy of reports with root-relative paths. The
// input slice is not modified.
func ToRelativeReports(reports []scan.FileReport, rootDir string) []scan.FileReport {
	if len(reports) == 0 {
		return reports
	}
	out := make([]scan.FileReport, len(reports))
	for i, r := range reports {
		r.Path = ToRelative(r.Path, rootDir)
		out[i] = r
	}
	return out
}

// ToRelativePaths converts every path in paths.
func ToRelativePaths(paths []string, rootDir string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ToRelative(p, rootDir)
	}
	return out
}
