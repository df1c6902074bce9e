package executor

import "context"

// Executor runs external tools (ffmpeg, whisper-cli) and captures
// their output.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
