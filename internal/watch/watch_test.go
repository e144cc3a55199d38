// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     watch
// Description: Unit tests for the debounced watcher
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func newTestWatcher(t *testing.T, paths ...string) *Watcher {
	t.Helper()
	w, err := New(paths, Options{Debounce: 50 * time.Millisecond, Extensions: []string{".glot"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

// runWatcher starts w and returns the channel of delivered batches
func runWatcher(t *testing.T, w *Watcher) <-chan []Change {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []Change, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		w.Run(ctx, func(_ context.Context, changes []Change) {
			batches <- changes
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []Change) []Change {
	t.Helper()
	select {
	case changes := <-batches:
		return changes
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for changes")
		return nil
	}
}

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	other := t.TempDir()
	named := filepath.Join(other, "main.txt")
	writeFile(t, named, "1")

	w := newTestWatcher(t, dir, named)
	defer w.Close()

	tests := []struct {
		path     string
		expected bool
	}{
		{filepath.Join(dir, "a.glot"), true},
		{filepath.Join(sub, "b.GLOT"), true},
		{filepath.Join(dir, "notes.txt"), false},
		{named, true},
		{filepath.Join(other, "a.glot"), false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			if got := w.Matches(tt.path); got != tt.expected {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestRecordAndFlush(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "b.glot")
	writeFile(t, existing, "2")

	w := newTestWatcher(t, dir)
	defer w.Close()

	events := []fsnotify.Event{
		{Name: filepath.Join(dir, "a.glot"), Op: fsnotify.Write},
		{Name: filepath.Join(dir, "a.glot"), Op: fsnotify.Write},
		{Name: filepath.Join(dir, "a.glot"), Op: fsnotify.Chmod},
		{Name: filepath.Join(dir, "c.glot"), Op: fsnotify.Remove},
		{Name: existing, Op: fsnotify.Rename},
		{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write},
	}
	for _, e := range events {
		w.record(e)
	}

	changes := w.flush()
	expected := []Change{
		{Path: filepath.Join(dir, "a.glot")},
		{Path: existing},
		{Path: filepath.Join(dir, "c.glot"), Removed: true},
	}
	if len(changes) != len(expected) {
		t.Fatalf("Expected %d changes, got %v", len(expected), changes)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("Change %d: expected %+v, got %+v", i, expected[i], changes[i])
		}
	}

	if again := w.flush(); len(again) != 0 {
		t.Errorf("Expected an empty batch after flush, got %v", again)
	}
}

func TestRun_DeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)
	batches := runWatcher(t, w)

	path := filepath.Join(dir, "a.glot")
	writeFile(t, path, "1")
	writeFile(t, path, "1 + 2")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	changes := waitBatch(t, batches)
	for _, c := range changes {
		if c.Path != path {
			t.Errorf("Unexpected change %+v", c)
		}
		if c.Removed {
			t.Errorf("Expected %s to be changed, not removed", c.Path)
		}
	}
	if len(changes) != 1 {
		t.Errorf("Expected a single change for %s, got %v", path, changes)
	}
}

func TestRun_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.glot")
	writeFile(t, path, "1")

	w := newTestWatcher(t, dir)
	batches := runWatcher(t, w)

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove %s: %v", path, err)
	}

	changes := waitBatch(t, batches)
	if len(changes) != 1 || !changes[0].Removed {
		t.Errorf("Expected %s to be reported as removed, got %v", path, changes)
	}
}

func TestRecord_NewDirectory(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)
	defer w.Close()

	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(filepath.Join(sub, "deeper"), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", sub, err)
	}
	early := filepath.Join(sub, "deeper", "early.glot")
	writeFile(t, early, "1")
	writeFile(t, filepath.Join(sub, "notes.txt"), "ignored")

	if !w.record(fsnotify.Event{Name: sub, Op: fsnotify.Create}) {
		t.Fatal("Expected the new directory to add a pending change")
	}
	if !w.Matches(filepath.Join(sub, "later.glot")) || !w.Matches(filepath.Join(sub, "deeper", "later.glot")) {
		t.Error("Expected sources in the new directory tree to match")
	}

	changes := w.flush()
	if len(changes) != 1 || changes[0] != (Change{Path: early}) {
		t.Errorf("Expected only %s, got %v", early, changes)
	}
}

func TestRun_WatchesNewDirectory(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)
	batches := runWatcher(t, w)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", sub, err)
	}
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(sub, "a.glot")
	writeFile(t, path, "1")

	for {
		for _, c := range waitBatch(t, batches) {
			if c.Path == path {
				return
			}
		}
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context, []Change) {})
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingPath(t *testing.T) {
	if _, err := New([]string{filepath.Join(t.TempDir(), "missing")}, Options{}); err == nil {
		t.Error("Expected an error for a missing path")
	}
}
