// Package watch reloads the note list when the database file is written by
// another process.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Watch is given a non-positive debounce.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc is called once per burst of database writes.
type ReloadFunc func(ctx context.Context) error

// Watch observes the directory holding dbPath and calls reload after writes
// to the database or its WAL settle for debounce. It returns when ctx is
// cancelled.
func Watch(ctx context.Context, dbPath string, debounce time.Duration, logger *slog.Logger, reload ReloadFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("db", abs))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if err := reload(ctx); err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: reloaded")

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDBFile(abs, ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// isDBFile reports whether name is the database file or its WAL.
// The shared-memory index is skipped since readers touch it too.
func isDBFile(dbPath, name string) bool {
	name = filepath.Clean(name)
	if name == dbPath {
		return true
	}
	return strings.HasPrefix(name, dbPath) && strings.TrimPrefix(name, dbPath) == "-wal"
}
