package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/config"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/processor"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/scanner"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/watcher"
	"github.com/jaredswanson/speech-to-text-dropbox/internal/whisper"
	"github.com/jaredswanson/speech-to-text-dropbox/pkg/executor"
)

var version = "dev"

func main() {
	// .env values join the environment before config resolution
	_ = godotenv.Load()

	var configPath, model, baseDir string

	rootCmd := &cobra.Command{
		Use:     "stt-dropbox",
		Short:   "Batch-transcribe audio dropped into a watched folder",
		Version: version,
		Long: `stt-dropbox transcribes audio placed under <base-dir>/dropbox using
whisper.cpp. Transcripts land in <base-dir>/output and finished inputs
are archived to <base-dir>/processed.

A single audio file becomes one transcript. A directory is treated as
an audiobook: its chapters are transcribed in lexicographic file name
order and concatenated into one transcript named after the directory.

Without a subcommand, one processing pass runs and the program exits.
Interrupted or failed items simply stay in the dropbox for the next
run; a transcript that already exists is never regenerated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, model, baseDir)
			if err != nil {
				return err
			}

			log, cleanup, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			log.Info(ctx, "speech-to-text-dropbox %s", version)
			log.Info(ctx, "Base dir: %s, model: %s", cfg.Paths.BaseDir, cfg.Whisper.Model)

			proc, err := buildPipeline(ctx, cfg, log)
			if err != nil {
				return err
			}

			_, err = proc.Run(ctx)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "whisper model size: tiny, base, small, medium or large")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "directory holding dropbox/, output/ and processed/")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run continuously, processing the dropbox as files arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, model, baseDir)
			if err != nil {
				return err
			}

			log, cleanup, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			log.Info(ctx, "speech-to-text-dropbox %s (watch mode)", version)
			log.Info(ctx, "Base dir: %s, model: %s", cfg.Paths.BaseDir, cfg.Whisper.Model)

			proc, err := buildPipeline(ctx, cfg, log)
			if err != nil {
				return err
			}

			trigger := func(ctx context.Context) {
				if _, err := proc.Run(ctx); err != nil && ctx.Err() == nil {
					log.Error(ctx, "Processing pass failed: %v", err)
				}
			}

			w, err := watcher.New(cfg.DropboxDir(), cfg.SettleDuration(), trigger, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			// Setup graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					errChan <- err
				}
			}()

			log.Info(ctx, "Drop audio files into %s. Press Ctrl+C to stop", cfg.DropboxDir())

			select {
			case <-sigChan:
				log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				return fmt.Errorf("watcher: %w", err)
			}

			log.Info(ctx, "Shutting down gracefully...")
			cancel()

			log.Info(ctx, "Stopped")
			return nil
		},
	}

	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, STT_* environment
// variables and explicit flags, in that order, then validates the
// result and prepares the directory layout.
func loadConfig(configPath, model, baseDir string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	} else if _, statErr := os.Stat("config.yaml"); statErr == nil {
		cfg, err = config.Load("config.yaml")
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &config.Config{}
	}

	cfg.ApplyEnv()

	if model != "" {
		cfg.Whisper.Model = model
	}
	if baseDir != "" {
		cfg.Paths.BaseDir = baseDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureLayout(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// openLogger builds the leveled logger, teeing to the log file when
// one is configured. The returned cleanup closes the file.
func openLogger(cfg *config.Config) (logger.Logger, func(), error) {
	out := io.Writer(os.Stdout)
	cleanup := func() {}

	if path := cfg.LogFilePath(); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		cleanup = func() { f.Close() }
	}

	return logger.New(cfg.Logging.Level, out), cleanup, nil
}

// buildPipeline wires the scanner, the whisper invoker and the
// processor together. Whisper setup resolves ffmpeg, the whisper
// binary and the model file up front, so a broken environment fails
// here instead of halfway through a run.
func buildPipeline(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	exec := executor.New()

	tr, err := whisper.New(ctx, cfg, exec, log)
	if err != nil {
		return nil, err
	}

	sc := scanner.New(cfg.DropboxDir(), []string{cfg.OutputDir(), cfg.ProcessedDir()}, log)

	return processor.New(cfg, sc, tr, log), nil
}
