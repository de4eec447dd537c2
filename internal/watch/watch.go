// Package watch re-triggers a governance run when lineage inputs change.
// Every trigger is a full fresh recompute; there is no incremental graph
// mutation.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces bursts of filesystem events into one rerun.
const debounceInterval = 100 * time.Millisecond

// watchedExtensions are the input file types that trigger a rerun.
var watchedExtensions = map[string]bool{
	".csv":  true,
	".yaml": true,
	".yml":  true,
}

// Watcher observes input paths and invokes a callback on relevant changes.
type Watcher struct {
	paths    []string
	logger   *slog.Logger
	debounce time.Duration
}

// New creates a watcher over the given files and directories. Directories
// are watched recursively, skipping hidden subdirectories.
func New(logger *slog.Logger, paths ...string) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		paths:    paths,
		logger:   logger,
		debounce: debounceInterval,
	}
}

// Run watches until the context is canceled, calling onChange after each
// debounced batch of relevant events.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range w.paths {
		if err := w.add(watcher, path); err != nil {
			return err
		}
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !watchedExtensions[filepath.Ext(event.Name)] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := filepath.Base(event.Name)
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.logger.Info("change detected", "file", name)
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// add registers a file or directory tree with the watcher.
func (w *Watcher) add(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat watch path %s: %w", path, err)
	}
	if !info.IsDir() {
		// Watch the containing directory so edits via rename are seen.
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if name := fi.Name(); len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(p)
		}
		return nil
	})
}
