package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"termchat/debounce"
	"termchat/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is how long the watcher waits for writes to settle
// before reloading the config file.
const DefaultReloadDelay = 250 * time.Millisecond

// Watch watches the config file at path and calls onChange with the freshly
// loaded config whenever it changes. It blocks until ctx is cancelled.
// onChange runs on a timer goroutine; callers must hand the config over to
// their own event loop.
func Watch(ctx context.Context, path string, delay time.Duration, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Watch the directory rather than the file: editors and SaveConfigTo
	// replace the file with a rename, which drops a file-level watch.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add config directory to watcher: %w", err)
	}
	log.InfoLog.Printf("watching config file for changes: %s", path)

	reload := debounce.New(delay)
	defer reload.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			reload.Trigger(func() {
				cfg, err := LoadConfigFrom(path)
				if err != nil {
					log.WarningLog.Printf("failed to reload config: %v", err)
					return
				}
				log.InfoLog.Printf("reloaded config from %s", path)
				onChange(cfg)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.ErrorLog.Printf("config watcher error: %v", err)
		}
	}
}
