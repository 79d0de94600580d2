// Package watcher reports changes made to a store file by other processes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/logger"
)

// Watch observes path until ctx is cancelled and calls onChange once per
// burst of writes, after the debounce window has passed quietly.
//
// The parent directory is watched rather than the file so that atomic
// replacement (write temp, rename over) is seen. Sibling files sharing the
// base name plus a suffix, such as SQLite's -wal and -journal, also count.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = constants.WatcherDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dir, base := filepath.Dir(path), filepath.Base(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Debug("Watching store", "path", path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped", "path", path)
			return nil

		case <-fire:
			fire = nil
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !matches(base, filepath.Base(ev.Name)) || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "path", path, "error", werr)
		}
	}
}

func matches(base, name string) bool {
	return name == base || strings.HasPrefix(name, base+"-")
}
