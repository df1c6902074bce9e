package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Start begins monitoring the dropbox directory. One full pass runs
// immediately to pick up whatever is already waiting; after that, each
// settled burst of events queues at most one more pass. Passes run
// strictly one at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s (settle %s)", w.dropboxDir, w.settle)

	ctx, cancel := context.WithCancel(ctx)

	pending := make(chan struct{}, 1)
	pending <- struct{}{}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				w.trigger(ctx)
				w.pruneWatches()
			}
		}
	}()

	defer wg.Wait()
	defer cancel()

	settle := time.NewTimer(w.settle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopping...")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				w.logger.Debug(ctx, "Change detected: %s", event.Name)
				if event.Op&fsnotify.Create != 0 {
					w.watchIfDir(ctx, event.Name)
				}
				settle.Reset(w.settle)
			}

		case <-settle.C:
			select {
			case pending <- struct{}{}:
			default:
				// A pass is already queued; it will see these changes.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// watchIfDir starts watching a directory that just appeared in the
// dropbox. Watches are not recursive: chapter files copied into a new
// audiobook directory only reset the settle timer once the directory
// itself is watched.
func (w *implWatcher) watchIfDir(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn(ctx, "Failed to watch new directory %s: %v", path, err)
		return
	}
	w.logger.Debug(ctx, "Watching new directory: %s", path)
}

// pruneWatches drops watches whose directory a pass archived away.
func (w *implWatcher) pruneWatches() {
	for _, path := range w.watcher.WatchList() {
		if path == w.dropboxDir {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			_ = w.watcher.Remove(path)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
