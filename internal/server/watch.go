package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
)

const debounceDuration = 500 * time.Millisecond

// WatchMetadata reloads path into store whenever it changes on disk and calls
// onReload after each successful reload. It returns when ctx is done.
func WatchMetadata(ctx context.Context, path string, store *metadata.Store, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory: atomic writers replace the file by rename.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	slog.Info("Watching image metadata", "path", path)

	target := filepath.Clean(path)
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			m, err := metadata.Load(path)
			if err != nil {
				slog.Error("Failed to reload image metadata", "path", path, "error", err)
				continue
			}
			if err := m.Validate(); err != nil {
				slog.Error("Reloaded image metadata is invalid", "path", path, "error", err)
				continue
			}
			store.Set(m)
			slog.Info("Image metadata reloaded", "images", len(m.AvailableImages))
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}
