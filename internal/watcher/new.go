package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
)

type implWatcher struct {
	dropboxDir string
	settle     time.Duration
	trigger    TriggerFunc
	logger     logger.Logger
	watcher    *fsnotify.Watcher
}

// New creates a Watcher over the dropbox directory. Filesystem events
// are debounced by settle so half-copied files get time to finish.
func New(dropboxDir string, settle time.Duration, trigger TriggerFunc, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dropboxDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle <= 0 {
		settle = 2 * time.Second
	}

	return &implWatcher{
		dropboxDir: dropboxDir,
		settle:     settle,
		trigger:    trigger,
		logger:     log,
		watcher:    fsw,
	}, nil
}
