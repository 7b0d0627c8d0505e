package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

func TestParseTOML(t *testing.T) {
	content := `
version = 1
include = ["src/**"]
exclude = ["**/gen/**"]

[project]
root = "app"

[detectors]
enabled = ["naming"]

[detectors.deep_nesting]
threshold = 5

[detectors.complexity]
warn_at = 20

[scan]
max_file_size = 2048

[performance]
workers = 2
`
	cfg, err := parseTOML([]byte(content), "test")
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.Project.Root)
	assert.Equal(t, []string{"src/**"}, cfg.Include)
	assert.Equal(t, []string{"**/gen/**"}, cfg.Exclude)
	assert.Equal(t, []string{"naming"}, cfg.Detectors.Enabled)
	assert.Equal(t, 5, cfg.Detectors.DeepNesting.Threshold)
	assert.Equal(t, 20, cfg.Detectors.Complexity.WarnAt)
	// untouched keys keep their defaults
	assert.Equal(t, 5, cfg.Detectors.Complexity.NoteAt)
	assert.Equal(t, 30, cfg.Detectors.LongFunction.Threshold)
	assert.True(t, cfg.Scan.RespectGitignore)
	assert.Equal(t, int64(2048), cfg.Scan.MaxFileSize)
	assert.Equal(t, 2, cfg.Performance.Workers)
	assert.Equal(t, DefaultCacheEntries, cfg.Performance.CacheEntries)
	assert.Equal(t, DefaultWatchDebounceMs, cfg.Watch.DebounceMs)
}

func TestParseTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := parseTOML([]byte("[detectors]\nbogus = 1\n"), "strict.toml")
	require.Error(t, err)

	var ce *serrors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "toml", ce.Field)
}

func TestParseTOMLSyntaxError(t *testing.T) {
	_, err := parseTOML([]byte("[scan\nmax_file_size = 1\n"), "broken.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML config")
}

func TestLoadTOMLResolvesRoot(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadTOML(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	writeFile(t, dir, TOMLFileName, "[project]\nroot = \"pkg\"\n")
	cfg, err = LoadTOML(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg"), cfg.Project.Root)
	assert.Equal(t, "pkg", cfg.Project.Name)
}
