package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Watch reloads the store whenever its file is written, created or renamed
// into place, then calls onChange. The directory is watched rather than the
// file so that editors which replace the file are picked up. Watch blocks
// until ctx is cancelled.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isConfigEvent(event) {
				continue
			}
			changed, err := s.reload()
			if err != nil {
				logger.Warn("config reload failed, keeping previous values: %v", err)
				continue
			}
			if !changed {
				continue
			}
			logger.Info("config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// isConfigEvent reports whether event changes the contents of the config file.
func (s *ConfigStore) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
