package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/smellscan/internal/analysis"
	"github.com/standardbeagle/smellscan/internal/scan"
)

const deadCodeJS = "function add(a, b) {\n  return a + b;\n  a = 1;\n}\n"

func newTestWatcher(t *testing.T) (*Watcher, <-chan Batch) {
	t.Helper()
	opts := scan.DefaultOptions()
	opts.Analysis.Enabled = []analysis.IssueKind{analysis.DeadCode}

	batches := make(chan Batch, 32)
	w, err := New(scan.New(opts), 50*time.Millisecond, func(b Batch) { batches <- b })
	require.NoError(t, err)
	return w, batches
}

// waitFor drains batches until match accepts one.
func waitFor(t *testing.T, batches <-chan Batch, match func(Batch) bool) Batch {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case b := <-batches:
			if match(b) {
				return b
			}
		case <-deadline:
			t.Fatal("timed out waiting for watch batch")
			return Batch{}
		}
	}
}

func reportFor(b Batch, path string) (scan.FileReport, bool) {
	for _, r := range b.Reports {
		if r.Path == path {
			return r, true
		}
	}
	return scan.FileReport{}, false
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_ReanalyzesChangedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

	w, batches := newTestWatcher(t)
	require.NoError(t, w.Start(context.Background(), root))
	defer w.Stop()

	target := filepath.Join(root, "a.js")
	writeFile(t, filepath.Join(root, "node_modules", "x.js"), deadCodeJS)
	writeFile(t, filepath.Join(root, "notes.txt"), "text")
	writeFile(t, target, deadCodeJS)

	b := waitFor(t, batches, func(b Batch) bool {
		_, ok := reportFor(b, target)
		return ok
	})
	r, _ := reportFor(b, target)
	assert.False(t, r.Failed())
	assert.Equal(t, []string{"Unreachable code detected"}, r.Suggestions)
	for _, other := range b.Reports {
		assert.Equal(t, target, other.Path, "only matching files are analyzed")
	}

	require.NoError(t, os.Remove(target))
	waitFor(t, batches, func(b Batch) bool {
		return slices.Contains(b.Removed, target)
	})

	stats := w.Stats()
	assert.True(t, stats.IsActive)
	assert.Positive(t, stats.EventsProcessed)
	assert.Positive(t, stats.Batches)

	require.NoError(t, w.Stop())
	assert.False(t, w.Stats().IsActive)
}

func TestWatcher_NewDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, batches := newTestWatcher(t)
	require.NoError(t, w.Start(context.Background(), root))
	defer w.Stop()

	target := filepath.Join(root, "pkg", "sub", "b.ts")
	writeFile(t, target, deadCodeJS)

	b := waitFor(t, batches, func(b Batch) bool {
		_, ok := reportFor(b, target)
		return ok
	})
	r, _ := reportFor(b, target)
	assert.Len(t, r.Issues, 1)
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	w, _ := newTestWatcher(t)
	require.NoError(t, w.Start(ctx, t.TempDir()))

	cancel()
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_StartErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, _ := newTestWatcher(t)
	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.ErrorIs(t, w.Start(context.Background(), t.TempDir()), ErrAlreadyStarted)
	require.NoError(t, w.Stop())
}
