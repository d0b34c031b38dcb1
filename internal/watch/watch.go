// Package watch re-reads a file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler receives the path of the watched file. It is called once when
// watching starts and again after every write or create that targets the
// file; a file renamed into place shows up as a create. Returning an error
// stops the watch.
type Handler func(path string) error

// Watcher follows a single file.
type Watcher struct {
	path   string
	logger *zap.Logger
}

// New creates a watcher for path.
func New(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: filepath.Clean(path), logger: logger}
}

// Run blocks until ctx is done or fn fails. The parent directory is watched
// rather than the file itself so editors that replace the file on save are
// still followed.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching", zap.String("path", w.path))

	if err := fn(w.path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			if err := fn(w.path); err != nil {
				return err
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}
