package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedFormats lists the audio extensions accepted for transcription.
// ffmpeg normalizes all of them before whisper sees the audio.
var SupportedFormats = []string{".mp3", ".m4a", ".aac", ".ogg", ".flac", ".wav", ".webm", ".opus"}

// IsAudioFile checks if the file has a supported audio extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// Scan reads the dropbox once and returns items in name order. Hidden
// entries and unsupported files are skipped with a log line.
func (s *implScanner) Scan(ctx context.Context) ([]Item, error) {
	entries, err := os.ReadDir(s.dropboxDir)
	if err != nil {
		return nil, fmt.Errorf("read dropbox directory: %w", err)
	}

	var items []Item
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			s.logger.Debug(ctx, "Skipping hidden entry: %s", name)
			continue
		}

		path := filepath.Join(s.dropboxDir, name)
		if s.isExcluded(path) {
			s.logger.Debug(ctx, "Skipping reserved directory: %s", path)
			continue
		}

		if e.IsDir() {
			chapters, err := s.listChapters(ctx, path)
			if err != nil {
				s.logger.Error(ctx, "Failed to read audiobook directory %s: %v", path, err)
				continue
			}
			items = append(items, Item{
				Kind:     KindAudiobook,
				Name:     name,
				Path:     path,
				Chapters: chapters,
			})
			continue
		}

		if !IsAudioFile(name) {
			s.logger.Warn(ctx, "Skipping unsupported item: %s", name)
			continue
		}

		items = append(items, Item{
			Kind: KindAudioFile,
			Name: name,
			Path: path,
		})
	}

	return items, nil
}

// listChapters returns the audio files directly inside dir in
// lexicographic order. Nested directories are ignored.
func (s *implScanner) listChapters(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var chapters []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !IsAudioFile(e.Name()) {
			s.logger.Debug(ctx, "Ignoring non-audio file in %s: %s", dir, e.Name())
			continue
		}
		chapters = append(chapters, filepath.Join(dir, e.Name()))
	}

	sort.Strings(chapters)
	return chapters, nil
}

func (s *implScanner) isExcluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := s.exclude[abs]
	return ok
}
