// Package watcher keeps stored paths in sync with a plain-text list file,
// re-reading it whenever it changes.
package watcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
)

// FileState captures what the watcher knows about the list file.
type FileState struct {
	Exists  bool
	ModTime time.Time
	Size    int64
}

// changed reports whether s differs from prev.
func (s FileState) changed(prev *FileState) bool {
	if prev == nil {
		return true
	}
	return s.Exists != prev.Exists || !s.ModTime.Equal(prev.ModTime) || s.Size != prev.Size
}

// Event describes one notable thing the watcher did or saw.
type Event struct {
	Level   string // "info", "warning"
	Title   string
	Message string
	Time    time.Time
	Result  hierarchy.BulkResult
}

// SyncFunc stores the given lines, typically via hierarchy.Service.BulkCreate.
type SyncFunc func(ctx context.Context, lines []string) (hierarchy.BulkResult, error)

// Watcher polls a list file at a regular interval and syncs it whenever
// its size or modification time changes.
type Watcher struct {
	path          string
	interval      time.Duration
	sync          SyncFunc
	eventFn       func(Event)
	previous      *FileState
	lastAlertKeys map[string]bool // dedup: suppress repeated identical warnings
}

// New creates a Watcher for the list file at path.
func New(path string, interval time.Duration, sync SyncFunc, eventFn func(Event)) *Watcher {
	return &Watcher{
		path:          path,
		interval:      interval,
		sync:          sync,
		eventFn:       eventFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Run syncs once, then checks at every interval. Blocks until ctx is
// cancelled and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	w.emit(w.Check(ctx))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.emit(w.Check(ctx))
		}
	}
}

func (w *Watcher) emit(events []Event) {
	if w.eventFn == nil {
		return
	}
	for _, e := range events {
		w.eventFn(e)
	}
}

// Check performs a single cycle: stat the file, and when it changed since
// the last cycle, read and sync it. Identical warnings are suppressed until
// the underlying condition changes.
func (w *Watcher) Check(ctx context.Context) []Event {
	curr, err := w.Snapshot()
	if err != nil {
		return w.dedup(Event{
			Level:   "warning",
			Title:   "List file unreadable",
			Message: err.Error(),
			Time:    time.Now(),
		})
	}
	if !curr.changed(w.previous) {
		return nil
	}

	if !curr.Exists {
		w.previous = curr
		return w.dedup(Event{
			Level:   "warning",
			Title:   "List file missing",
			Message: fmt.Sprintf("%s does not exist", w.path),
			Time:    time.Now(),
		})
	}

	lines, err := readLines(w.path)
	if err != nil {
		return w.dedup(Event{
			Level:   "warning",
			Title:   "List file unreadable",
			Message: err.Error(),
			Time:    time.Now(),
		})
	}
	res, err := w.sync(ctx, lines)
	if err != nil {
		return w.dedup(Event{
			Level:   "warning",
			Title:   "Sync failed",
			Message: err.Error(),
			Time:    time.Now(),
		})
	}

	w.previous = curr
	w.lastAlertKeys = make(map[string]bool)
	return []Event{{
		Level:   "info",
		Title:   "Synced",
		Message: fmt.Sprintf("%d created, %d skipped", res.Created, res.Skipped),
		Time:    time.Now(),
		Result:  res,
	}}
}

// dedup returns e unless an identical warning was returned by the previous
// cycle.
func (w *Watcher) dedup(e Event) []Event {
	key := e.Level + ":" + e.Title + ":" + e.Message
	if w.lastAlertKeys[key] {
		return nil
	}
	w.lastAlertKeys = map[string]bool{key: true}
	return []Event{e}
}

// Snapshot stats the list file. A missing file is not an error.
func (w *Watcher) Snapshot() (*FileState, error) {
	info, err := os.Stat(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return &FileState{}, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", w.path)
	}
	return &FileState{Exists: true, ModTime: info.ModTime(), Size: info.Size()}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
