package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/Robbepop/enum-newtype/internal/logger"
)

// debouncePeriod merges rapid changes like an editor saving via a temporary
// file into a single run.
const debouncePeriod = 200 * time.Millisecond

// watch runs again whenever one of the files is written until ctx is done.
// The directories of the files are watched, so that files replaced by editors
// keep being watched.
func (r *runner) watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.wd, path)
		}
		watched[filepath.Clean(path)] = true

		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		dirs[dir] = true
	}
	logger.Infow("Watching for changes", "files", len(files))

	rerun := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			logger.Debugw("File changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debouncePeriod, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			// Diagnostics are printed by run.
			if err := r.run(ctx, files); err != nil && !errors.Is(err, errReported) {
				logger.Errorw("Expansion failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", "error", err)
		}
	}
}
