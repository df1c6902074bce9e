package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewNilWriterDefaultsToStdout(t *testing.T) {
	log := New("info", nil)
	if log == nil {
		t.Fatal("New() returned nil")
	}
	// Must not panic when the fallback writer is in use.
	log.Info(context.Background(), "startup")
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		want        bool
	}{
		{"same level passes", "info", "info", true},
		{"debug hidden at info", "info", "debug", false},
		{"warn passes at info", "info", "warn", true},
		{"info hidden at warn", "warn", "info", false},
		{"warn hidden at error", "error", "warn", false},
		{"error passes everywhere", "debug", "error", true},
		{"unknown config level acts as info", "verbose", "debug", false},
		{"unknown target level always passes", "info", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel, nil).(*implLogger)
			if got := log.shouldLog(tt.logLevel); got != tt.want {
				t.Errorf("shouldLog(%q) at %q = %v, want %v", tt.logLevel, tt.configLevel, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Debug(ctx, "hidden debug")
	log.Info(ctx, "hidden info")
	log.Warn(ctx, "visible warn")
	log.Error(ctx, "visible error %d", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible warn") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "[ERROR] visible error 42") {
		t.Errorf("error message missing from output: %q", out)
	}
}
