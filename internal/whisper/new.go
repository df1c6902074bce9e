package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/config"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
	"github.com/jaredswanson/speech-to-text-dropbox/pkg/executor"
)

type implTranscriber struct {
	cfg       *config.Config
	executor  executor.Executor
	logger    logger.Logger
	binary    string
	ffmpeg    string
	modelFile string
}

// binaryCandidates are the whisper.cpp executable names tried on PATH,
// in order of preference. "main" is the name older whisper.cpp builds
// shipped under.
var binaryCandidates = []string{"whisper-cli", "whisper-cpp", "whisper.cpp", "whisper", "main"}

// New resolves the external tools and the model file once, so per-item
// processing can assume a working environment. It downloads the ggml
// model on first use.
func New(ctx context.Context, cfg *config.Config, execr executor.Executor, log logger.Logger) (Transcriber, error) {
	model, err := ParseModelSize(cfg.Whisper.Model)
	if err != nil {
		return nil, err
	}

	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return nil, err
	}

	binary, err := findBinary(cfg.Whisper.BinaryPath)
	if err != nil {
		return nil, err
	}

	modelDir := cfg.Whisper.ModelDir
	if modelDir == "" {
		modelDir, err = defaultModelDir()
		if err != nil {
			return nil, err
		}
	}

	modelFile, err := ensureModel(ctx, modelDir, model, log)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "Whisper ready: binary=%s model=%s", binary, modelFile)

	return &implTranscriber{
		cfg:       cfg,
		executor:  execr,
		logger:    log,
		binary:    binary,
		ffmpeg:    ffmpegPath,
		modelFile: modelFile,
	}, nil
}

func findFFmpeg() (string, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: install ffmpeg and ensure it is on PATH", ErrFFmpegNotFound)
	}
	return path, nil
}

// findBinary resolves the whisper.cpp executable, preferring an
// explicitly configured path over a PATH search.
func findBinary(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w: configured path %s", ErrBinaryNotFound, explicit)
		}
		return explicit, nil
	}

	for _, name := range binaryCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrBinaryNotFound, strings.Join(binaryCandidates, ", "))
}

func defaultModelDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".speech-to-text-dropbox", "models"), nil
}
