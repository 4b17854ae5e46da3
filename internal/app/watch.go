package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/manifreeze/internal/manifest"
)

// watch re-evaluates the manifest whenever a watched manifest file or
// frozen directory changes, until the context is cancelled. A failed
// re-evaluation is logged and the previous lock file stays in place; the
// watcher keeps running so the next save can succeed.
func (a *App) watch(ctx context.Context, eval *manifest.Evaluator) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	if err := a.rearm(watcher, eval); err != nil {
		return err
	}
	a.logger.Info("👀 Watching for changes...", "paths", watcher.WatchList())

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch mode stopped.")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			// The lock file often lives next to the manifest, inside a
			// watched directory; writing it must not trigger the next
			// evaluation.
			if a.isLockFile(event.Name) {
				a.logger.Debug("Ignoring change to own lock file.", "path", event.Name)
				continue
			}
			a.logger.Info("Change detected, re-evaluating.", "path", event.Name, "op", event.Op.String())

			if err := a.evaluateOnce(ctx, eval); err != nil {
				a.logger.Error("Re-evaluation failed, keeping previous lock file.", "error", err)
				continue
			}
			// The manifest tree may now touch different directories.
			if err := a.rearm(watcher, eval); err != nil {
				return err
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Watcher reported an error.", "error", watchErr)
		}
	}
}

// isLockFile reports whether path names the configured output lock file.
// Paths are compared in absolute form since fsnotify reports event names
// relative to how the watch was added.
func (a *App) isLockFile(path string) bool {
	if a.config.OutputPath == "" {
		return false
	}
	lockAbs, err := filepath.Abs(a.config.OutputPath)
	if err != nil {
		return false
	}
	eventAbs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return eventAbs == lockAbs
}

// rearm points the watcher at the directories the most recent evaluation
// touched: the directory of every loaded manifest and every scanned
// freeze directory.
func (a *App) rearm(watcher *fsnotify.Watcher, eval *manifest.Evaluator) error {
	for _, p := range watcher.WatchList() {
		if err := watcher.Remove(p); err != nil {
			return fmt.Errorf("could not unwatch %s: %w", p, err)
		}
	}

	dirs := make(map[string]struct{})
	for _, p := range eval.TouchedPaths() {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("could not stat watched path %s: %w", p, err)
		}
		if info.IsDir() {
			dirs[p] = struct{}{}
		} else {
			dirs[filepath.Dir(p)] = struct{}{}
		}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}
	return nil
}
