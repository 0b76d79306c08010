// Package watch keeps an output tree in step with its input tree by
// re-processing files as they change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/abemedia/tokentrim/internal/logger"
	"github.com/abemedia/tokentrim/internal/runner"
)

// Watcher re-runs a Runner on the files of its input tree that are created
// or written.
type Watcher struct {
	runner   *runner.Runner
	watcher  *fsnotify.Watcher
	onResult func(runner.FileResult)
}

// New watches every directory below r's input root. onResult is called for
// every file processed; if nil, results are logged.
func New(r *runner.Runner, onResult func(runner.FileResult)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if onResult == nil {
		onResult = runner.LogResult
	}

	w := &Watcher{runner: r, watcher: fw, onResult: onResult}
	if err := w.addTree(r.Input(), false); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Run handles events until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher closed unexpectedly")
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if w.runner.Skip(event.Name) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed again before we got to it.
		logger.Debug("ignoring event", "path", event.Name, "error", err)
		return
	}

	if info.IsDir() {
		if err := w.addTree(event.Name, true); err != nil {
			logger.Error("failed to watch directory", "path", event.Name, "error", err)
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	rel, err := filepath.Rel(w.runner.Input(), event.Name)
	if err != nil {
		logger.Error("failed to resolve path", "path", event.Name, "error", err)
		return
	}
	w.onResult(w.runner.Process(rel))
}

// addTree mirrors and watches root and every directory below it. When
// process is set the files already present are processed too, since they
// may have been created before the watch was in place.
func (w *Watcher) addTree(root string, process bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if w.runner.Skip(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(w.runner.Input(), path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if err := w.runner.MirrorDir(rel); err != nil {
				return err
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			logger.Debug("watching", "path", rel)
			return nil
		}

		if process && d.Type().IsRegular() {
			w.onResult(w.runner.Process(rel))
		}
		return nil
	})
}
