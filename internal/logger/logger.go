package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// levelOrder ranks levels for filtering. Messages at or above the
// configured level are written.
var levelOrder = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger
	level  string
}

// New creates a Logger that writes to out at the given level. The CLI
// passes a MultiWriter here to tee the run log into a file; nil falls
// back to os.Stdout.
func New(level string, out io.Writer) Logger {
	if out == nil {
		out = os.Stdout
	}
	return &implLogger{
		logger: log.New(out, "", log.LstdFlags),
		level:  strings.ToLower(level),
	}
}

func (l *implLogger) shouldLog(level string) bool {
	current, ok := levelOrder[l.level]
	if !ok {
		current = levelOrder["info"]
	}

	target, ok := levelOrder[level]
	if !ok {
		// Unknown target levels are never filtered out.
		return true
	}

	return target >= current
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}
