// Package watch re-analyzes source files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/smellscan/internal/debug"
	"github.com/standardbeagle/smellscan/internal/scan"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("watcher already started")

// FileEventType represents the type of file system event
type FileEventType int

const (
	FileEventCreate FileEventType = iota
	FileEventWrite
	FileEventRemove
	FileEventRename
)

func (t FileEventType) String() string {
	switch t {
	case FileEventCreate:
		return "create"
	case FileEventWrite:
		return "write"
	case FileEventRemove:
		return "remove"
	case FileEventRename:
		return "rename"
	}
	return fmt.Sprintf("FileEventType(%d)", int(t))
}

// Batch is the outcome of one debounce window. Reports covers files that
// were created or changed, sorted by path; Removed lists files that are gone.
type Batch struct {
	Reports  []scan.FileReport
	Removed  []string
	Duration time.Duration
}

// Handler receives each batch on the watcher's event goroutine.
type Handler func(Batch)

// Stats contains statistics about file watching operations
type Stats struct {
	EventsProcessed int64
	Batches         int64
	ErrorCount      int64
	LastEventTime   time.Time
	IsActive        bool
}

// Watcher monitors a directory tree and re-runs the scanner over changed
// files once events settle.
type Watcher struct {
	watcher   *fsnotify.Watcher
	scanner   *scan.Scanner
	debouncer *eventDebouncer
	handler   Handler

	root   string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once

	statsMu sync.RWMutex
	stats   Stats
}

// New creates a watcher that analyzes changes with scanner and hands every
// batch to handler. debounce is the quiet period that closes a batch.
func New(scanner *scan.Scanner, debounce time.Duration, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		watcher:   fsw,
		scanner:   scanner,
		debouncer: newEventDebouncer(debounce),
		handler:   handler,
	}, nil
}

// Start watches root recursively until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	err := ErrAlreadyStarted
	w.startOnce.Do(func() {
		err = w.start(ctx, root)
	})
	return err
}

func (w *Watcher) start(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve watch root %s: %w", root, err)
	}
	w.root = abs
	w.ctx, w.cancel = context.WithCancel(ctx)

	debug.LogWatch("starting file watcher for directory: %s", abs)
	if err := w.addWatches(abs, nil); err != nil {
		w.cancel()
		return fmt.Errorf("failed to add watches starting from %s: %w", abs, err)
	}

	w.setActive(true)
	w.wg.Add(2)
	go w.processEvents()
	go w.debouncer.run(w.ctx, &w.wg, w.flush)

	debug.LogWatch("file watcher started")
	return nil
}

// Stop stops the watcher and waits for its goroutines. Pending events are
// dropped. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.debouncer.stop()
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("close fsnotify watcher: %w", cerr)
		}
		w.wg.Wait()
		w.setActive(false)
		debug.LogWatch("file watcher stopped")
	})
	return err
}

// Stats returns current watch statistics.
func (w *Watcher) Stats() Stats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	return w.stats
}

// addWatches adds a watch for dir and every non-excluded directory below it.
// When found is non-nil it receives the matching files already present,
// which covers files written before the watch on a new directory existed.
func (w *Watcher) addWatches(dir string, found func(string)) error {
	// symlink cycles
	visitedDirs := make(map[string]bool)

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}

		if !info.IsDir() {
			if found != nil && w.shouldProcessPath(path) {
				found(path)
			}
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visitedDirs[realPath] {
			return filepath.SkipDir
		}
		visitedDirs[realPath] = true

		if w.shouldIgnoreDirectory(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) shouldIgnoreDirectory(path string) bool {
	rel, ok := w.rel(path)
	if !ok {
		return true
	}
	return rel != "." && w.scanner.ExcludesDir(rel)
}

func (w *Watcher) shouldProcessPath(path string) bool {
	rel, ok := w.rel(path)
	return ok && w.scanner.Matches(rel)
}

// processEvents processes file system events from fsnotify
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.incrementStats(0, 1)
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	debug.LogWatch("received event %v for path %s", event.Op, path)

	info, err := os.Stat(path)
	if err != nil {
		// Gone: a removal, or the old name of a rename.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.shouldProcessPath(path) {
			w.debouncer.addEvent(path, FileEventRemove)
		}
		return
	}

	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 && !w.shouldIgnoreDirectory(path) {
			err := w.addWatches(path, func(file string) {
				w.debouncer.addEvent(file, FileEventCreate)
			})
			if err != nil {
				log.Printf("Warning: failed to add watch for new directory %s: %v", path, err)
			}
		}
		return
	}

	if !w.shouldProcessPath(path) {
		debug.LogWatch("ignoring file %s (doesn't match patterns)", path)
		return
	}

	var eventType FileEventType
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = FileEventCreate
	case event.Op&fsnotify.Write != 0:
		eventType = FileEventWrite
	case event.Op&fsnotify.Rename != 0:
		eventType = FileEventRename
	default:
		return
	}
	w.debouncer.addEvent(path, eventType)
}

// flush analyzes one settled batch of events and hands it to the handler.
func (w *Watcher) flush(events map[string]FileEventType) {
	start := time.Now()
	log.Printf("Processing %d debounced file events", len(events))

	var changed, removed []string
	for path, eventType := range events {
		if eventType == FileEventRemove {
			removed = append(removed, path)
		} else {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	sort.Strings(removed)

	reports, err := w.scanner.AnalyzeFiles(w.ctx, changed)
	if err != nil {
		// cancelled while analyzing; the watcher is shutting down
		debug.LogWatch("dropping batch of %d events: %v", len(events), err)
		return
	}

	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	w.incrementStats(int64(len(events)), int64(failed))

	if w.handler != nil {
		w.handler(Batch{Reports: reports, Removed: removed, Duration: time.Since(start)})
	}
}

func (w *Watcher) incrementStats(events, failures int64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.stats.EventsProcessed += events
	w.stats.ErrorCount += failures
	if events > 0 {
		w.stats.Batches++
		w.stats.LastEventTime = time.Now()
	}
}

func (w *Watcher) setActive(active bool) {
	w.statsMu.Lock()
	w.stats.IsActive = active
	w.statsMu.Unlock()
}
