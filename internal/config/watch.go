package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch re-reads the config file whenever it changes and passes the result
// to fn. Invalid edits are logged and skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, fn func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer w.Close()

	// Editors replace files by rename, so watch the directory.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			cfg := Default()
			if err := LoadFile(&cfg, path); err != nil {
				logger.Warn("Ignoring config change", zap.String("path", path), zap.Error(err))
				continue
			}
			ApplyEnv(&cfg)
			cfg.File = path
			if err := cfg.Validate(); err != nil {
				logger.Warn("Ignoring invalid config", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Debug("Config reloaded",
				zap.String("appearance", cfg.Appearance),
				zap.String("color_theme", cfg.ColorTheme))
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}
