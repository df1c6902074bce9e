package scanner

import (
	"path/filepath"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
)

type implScanner struct {
	dropboxDir string
	exclude    map[string]struct{}
	logger     logger.Logger
}

// New creates a Scanner over dropboxDir. Paths in exclude (the output
// and processed directories) are skipped should they ever appear
// inside the dropbox.
func New(dropboxDir string, exclude []string, log logger.Logger) Scanner {
	ex := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		if abs, err := filepath.Abs(p); err == nil {
			ex[abs] = struct{}{}
		}
	}

	return &implScanner{
		dropboxDir: dropboxDir,
		exclude:    ex,
		logger:     log,
	}
}
