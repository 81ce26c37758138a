package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the global configuration whenever the config file changes and
// passes each successfully loaded config to onReload. It watches the parent
// directory so editors that replace the file are picked up. Watch blocks until
// ctx is done.
func Watch(ctx context.Context, onReload func(*Config)) error {
	path := Path()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if err := Reload(); err != nil {
				logrus.WithError(err).WithField("file", path).Warn("failed to reload configuration")
				continue
			}
			cfg := Get()
			if err := cfg.Validate(); err != nil {
				logrus.WithError(err).WithField("file", path).Warn("reloaded configuration is invalid")
				continue
			}
			logrus.WithField("file", path).Info("configuration reloaded")
			if onReload != nil {
				onReload(cfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}
