package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the bursts of events editors and atomic renames
// produce into one reload.
const reloadDelay = 100 * time.Millisecond

// Watch calls onChange with the freshly loaded config whenever the file at
// path is written, created or renamed into place. It watches the parent
// directory so atomic saves are seen. Files that fail to parse are logged
// and skipped. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Printf("watch: config %s", path)

	target := filepath.Clean(path)
	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-reload:
			reload = nil
			cfg, err := Load(path)
			if err != nil {
				logger.Printf("watch: config reload failed: %v", err)
				continue
			}
			onChange(cfg)

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
			reload = time.After(reloadDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: config watcher error: %v", err)
		}
	}
}
