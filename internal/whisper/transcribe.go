package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Transcribe runs whisper.cpp over one audio file and returns the
// cleaned transcript text.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	tempDir, err := os.MkdirTemp("", "stt-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	wavPath := audioPath
	if !isNativeWav(audioPath) {
		t.logger.Debug(ctx, "Converting to 16kHz mono WAV: %s", audioPath)
		wavPath, err = t.convertToWav(ctx, audioPath, tempDir)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
				return "", err
			}
			return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
		}
	}

	// Whisper appends .txt to the output prefix
	outputPrefix := filepath.Join(tempDir, "transcript")

	args := []string{
		"-m", t.modelFile,
		"-f", wavPath,
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-otxt",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.binary, args...); err != nil {
		if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("%w: read transcript: %v", ErrTranscriptionFailed, err)
	}

	text := cleanTranscript(string(data))
	if text == "" {
		t.logger.Warn(ctx, "Empty transcript for %s", audioPath)
	}

	return text, nil
}

var spacePattern = regexp.MustCompile(`\s+`)

// cleanTranscript collapses whisper's per-segment lines into
// single-spaced text.
func cleanTranscript(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
