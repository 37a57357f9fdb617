package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchSettings calls apply with the contents of path now and after every
// change until ctx is done. The directory is watched so that editors which
// replace the file on save are followed. Errors from apply are logged and
// do not stop the watch.
func WatchSettings(ctx context.Context, path string, apply func([]byte) error) error {
	load := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("read settings file", "error", err, "path", path)
			return
		}
		if err := apply(data); err != nil {
			slog.Warn("apply settings file", "error", err, "path", path)
			return
		}
		slog.Info("settings loaded", "path", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	load()

	go func() {
		defer watcher.Close()
		target := filepath.Clean(path)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				load()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("settings watcher", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
