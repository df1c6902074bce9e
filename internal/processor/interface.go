package processor

import "context"

// Processor runs transcription passes over the dropbox.
type Processor interface {
	Run(ctx context.Context) (*Summary, error)
}

// Summary counts the outcomes of one pass. Skipped items already had
// a transcript from an earlier run.
type Summary struct {
	Transcribed int
	Skipped     int
	Archived    int
	Failed      int
}
