package whisper

import "context"

// Transcriber converts a single audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
