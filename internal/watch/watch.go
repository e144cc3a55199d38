// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     watch
// Description: Debounced file watcher for re-checking sources on change
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package watch reports changes to source files. Events are collected
// until the files have been quiet for the debounce interval and are then
// delivered as one batch.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/pkg/core/logging"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 200 * time.Millisecond

// Change describes one file in a batch
type Change struct {
	Path    string
	Removed bool
}

// Handler receives each batch of changes, sorted by path
type Handler func(ctx context.Context, changes []Change)

// Options configures a Watcher
type Options struct {
	Debounce   time.Duration   // Quiet period before a batch is delivered
	Extensions []string        // File extensions watched inside directories
	Logger     *logging.Logger // nil disables logging
}

// Watcher watches files and directories for source changes
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]bool // explicitly named files
	dirs    map[string]bool // directories given by the caller, and below
	options Options
	logger  *logging.Logger

	mu      sync.Mutex
	pending map[string]bool // path -> removed
}

// New starts watching paths. Files are watched through their parent
// directory so that editors replacing a file are noticed.
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		options: opts,
		logger:  logger.WithField("component", "watch"),
		pending: make(map[string]bool),
	}

	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[path] = true
		return w.watchDir(filepath.Dir(path))
	}

	_, err = w.addTree(path)
	return err
}

// addTree watches root and every directory below it and returns the
// matching files found on the way
func (w *Watcher) addTree(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if source.HasExtension(p, w.options.Extensions) {
				found = append(found, p)
			}
			return nil
		}
		w.mu.Lock()
		w.dirs[p] = true
		w.mu.Unlock()
		return w.watchDir(p)
	})
	return found, err
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Matches reports whether a change to path is of interest
func (w *Watcher) Matches(path string) bool {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && source.HasExtension(path, w.options.Extensions)
}

// Run delivers batches to handle until ctx is canceled. The underlying
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.options.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Debug("stopping watcher")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.record(event) {
				timer.Reset(w.options.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			if changes := w.flush(); len(changes) > 0 {
				w.logger.Debug("sources changed", "files", len(changes))
				handle(ctx, changes)
			}
		}
	}
}

// record adds a relevant event to the pending batch
func (w *Watcher) record(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) && w.isNewDir(event.Name) {
		return w.recordDir(event.Name)
	}
	if event.Op == fsnotify.Chmod || !w.Matches(event.Name) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if removed {
		// replaced by the editor in the meantime
		if _, err := os.Stat(event.Name); err == nil {
			removed = false
		}
	}
	w.pending[filepath.Clean(event.Name)] = removed
	return true
}

// isNewDir reports whether path is a directory created inside a watched tree
func (w *Watcher) isNewDir(path string) bool {
	path = filepath.Clean(path)
	w.mu.Lock()
	watched := w.dirs[filepath.Dir(path)] && !w.dirs[path]
	w.mu.Unlock()
	if !watched {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// recordDir starts watching a new directory tree. Sources written into it
// before the watch was in place are added to the pending batch.
func (w *Watcher) recordDir(dir string) bool {
	found, err := w.addTree(filepath.Clean(dir))
	if err != nil {
		w.logger.Warn("cannot watch new directory", "dir", dir, "error", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range found {
		w.pending[path] = false
	}
	return len(found) > 0
}

// flush takes the pending batch
func (w *Watcher) flush() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	changes := make([]Change, 0, len(w.pending))
	for path, removed := range w.pending {
		changes = append(changes, Change{Path: path, Removed: removed})
	}
	w.pending = make(map[string]bool)

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// Close stops watching without waiting for Run
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
