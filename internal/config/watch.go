package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceInterval is how long a file must stay quiet before onChange runs.
// Editors often write a file several times per save.
const DebounceInterval = 250 * time.Millisecond

// Watch calls onChange with the path of any watched file that was created,
// written or replaced. It watches the parent directories so that atomic
// renames are seen. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, logger *zap.Logger, onChange func(path string), paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			// The directory may not exist yet; nothing to reload then.
			logger.Warn("config watch failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		logger.Debug("watching config directory", zap.String("dir", dir))
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(DebounceInterval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending[name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))

		case now := <-ticker.C:
			for name, at := range pending {
				if now.Sub(at) >= DebounceInterval {
					delete(pending, name)
					logger.Info("config file changed", zap.String("path", name))
					onChange(name)
				}
			}
		}
	}
}
