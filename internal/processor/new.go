package processor

import (
	"github.com/jaredswanson/speech-to-text-dropbox/internal/config"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/scanner"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/whisper"
)

type implProcessor struct {
	cfg         *config.Config
	scanner     scanner.Scanner
	transcriber whisper.Transcriber
	logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, sc scanner.Scanner, tr whisper.Transcriber, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		scanner:     sc,
		transcriber: tr,
		logger:      log,
	}
}
