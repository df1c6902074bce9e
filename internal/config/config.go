package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper WhisperConfig `yaml:"whisper"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

type WhisperConfig struct {
	Model      string `yaml:"model"`
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type PathsConfig struct {
	BaseDir string `yaml:"base_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type WatchConfig struct {
	Settle string `yaml:"settle"`
}

// Load reads a YAML config file. Keys absent from the file keep their
// zero values until Validate fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays STT_* environment variables onto the config.
// Environment values win over file values.
func (c *Config) ApplyEnv() {
	c.Whisper.Model = envOrDefault("STT_MODEL", c.Whisper.Model)
	c.Whisper.BinaryPath = envOrDefault("STT_WHISPER_BINARY", c.Whisper.BinaryPath)
	c.Whisper.ModelDir = envOrDefault("STT_MODEL_DIR", c.Whisper.ModelDir)
	c.Whisper.Language = envOrDefault("STT_LANGUAGE", c.Whisper.Language)
	c.Paths.BaseDir = envOrDefault("STT_BASE_DIR", c.Paths.BaseDir)
	c.Logging.Level = envOrDefault("STT_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = envOrDefault("STT_LOG_FILE", c.Logging.File)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) Validate() error {
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if !isValidModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model %q must be one of tiny, base, small, medium, large", c.Whisper.Model)
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Paths.BaseDir == "" {
		c.Paths.BaseDir = "."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" {
		c.Logging.File = "speech-to-text.log"
	}
	if c.Watch.Settle == "" {
		c.Watch.Settle = "2s"
	}
	if d, err := time.ParseDuration(c.Watch.Settle); err != nil || d <= 0 {
		return fmt.Errorf("watch.settle %q is not a valid duration", c.Watch.Settle)
	}

	return nil
}

func isValidModel(model string) bool {
	switch model {
	case "tiny", "base", "small", "medium", "large":
		return true
	}
	return false
}

// DropboxDir is where new audio arrives.
func (c *Config) DropboxDir() string {
	return filepath.Join(c.Paths.BaseDir, "dropbox")
}

// OutputDir receives finished transcripts.
func (c *Config) OutputDir() string {
	return filepath.Join(c.Paths.BaseDir, "output")
}

// ProcessedDir archives inputs whose transcripts have been written.
func (c *Config) ProcessedDir() string {
	return filepath.Join(c.Paths.BaseDir, "processed")
}

// LogFilePath resolves logging.file; relative paths land under the base dir.
func (c *Config) LogFilePath() string {
	if c.Logging.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(c.Paths.BaseDir, c.Logging.File)
}

// SettleDuration returns the watch debounce delay. Validate has already
// checked that the value parses.
func (c *Config) SettleDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Settle)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// EnsureLayout verifies the base directory exists and creates the
// dropbox, output and processed subdirectories under it.
func (c *Config) EnsureLayout() error {
	info, err := os.Stat(c.Paths.BaseDir)
	if err != nil {
		return fmt.Errorf("base directory %s: %w", c.Paths.BaseDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base directory %s is not a directory", c.Paths.BaseDir)
	}

	for _, dir := range []string{c.DropboxDir(), c.OutputDir(), c.ProcessedDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
