package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/scan"
)

func TestToRelative(t *testing.T) {
	root := filepath.FromSlash("/home/user/project")
	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{"simple relative path", "/home/user/project/src/main.go", root, "src/main.go"},
		{"nested relative path", "/home/user/project/internal/core/search.go", root, "internal/core/search.go"},
		{"same directory", "/home/user/project", root, "."},
		{"already relative path", "src/main.go", root, "src/main.go"},
		{"path outside root", "/other/location/file.go", root, "/other/location/file.go"},
		{"sibling with shared prefix", "/home/user/project2/a.go", root, "/home/user/project2/a.go"},
		{"dot-dot named file", "/home/user/project/..hidden.js", root, "..hidden.js"},
		{"empty root directory", "/home/user/project/file.go", "", "/home/user/project/file.go"},
		{"empty path", "", root, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRelative(filepath.FromSlash(tt.absPath), tt.rootDir)
			assert.Equal(t, tt.expected, filepath.ToSlash(got))
		})
	}
}

func TestToRelativeReports(t *testing.T) {
	root := filepath.FromSlash("/work")
	in := []scan.FileReport{
		{Path: filepath.FromSlash("/work/src/a.js"), Issues: []analysis.Issue{{Kind: analysis.DeadCode, Message: "Unreachable code detected"}}},
		{Path: filepath.FromSlash("/elsewhere/b.js")},
	}

	out := ToRelativeReports(in, root)
	assert.Equal(t, "src/a.js", filepath.ToSlash(out[0].Path))
	assert.Equal(t, in[0].Issues, out[0].Issues, "other fields are preserved")
	assert.Equal(t, filepath.FromSlash("/elsewhere/b.js"), out[1].Path)
	assert.Equal(t, filepath.FromSlash("/work/src/a.js"), in[0].Path, "input is not modified")

	assert.Empty(t, ToRelativeReports(nil, root))
}

func TestToRelativePaths(t *testing.T) {
	root := filepath.FromSlash("/work")
	got := ToRelativePaths([]string{filepath.FromSlash("/work/a.py"), "b.py"}, root)
	assert.Equal(t, []string{"a.py", "b.py"}, got)
	assert.Nil(t, ToRelativePaths(nil, root))
}
