package watcher

import "context"

// Watcher monitors the dropbox directory and triggers processing
// passes when its contents settle.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// TriggerFunc runs one full processing pass over the dropbox.
type TriggerFunc func(ctx context.Context)
