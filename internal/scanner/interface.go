package scanner

import "context"

// Scanner enumerates pending work in the dropbox directory.
type Scanner interface {
	Scan(ctx context.Context) ([]Item, error)
}
