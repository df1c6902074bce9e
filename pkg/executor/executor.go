package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ffmpeg and whisper-cli write progress chatter to stderr; error
// messages carry at most this many bytes of it.
const maxStderrLen = 500

type implExecutor struct{}

// New creates an Executor backed by os/exec.
func New() Executor {
	return &implExecutor{}
}

// Execute runs the command and returns its stdout. On failure the
// head of stderr is folded into the error. Cancelling ctx kills the
// process and the returned error wraps the context's error.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return "", fmt.Errorf("command '%s' interrupted: %w", name, cerr)
		}
		if msg := truncate(stderr.String()); msg != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, msg)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

func truncate(stderr string) string {
	s := strings.TrimSpace(stderr)
	if len(s) > maxStderrLen {
		return s[:maxStderrLen] + "..."
	}
	return s
}
