package whisper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/logger"
)

// ensureModel returns the path to the ggml model file, downloading it
// from HuggingFace on first use.
func ensureModel(ctx context.Context, modelDir string, model ModelSize, log logger.Logger) (string, error) {
	modelFile := filepath.Join(modelDir, model.Filename())

	if _, err := os.Stat(modelFile); err == nil {
		log.Debug(ctx, "Using existing model file: %s", modelFile)
		return modelFile, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("check model file: %w", err)
	}

	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	log.Info(ctx, "Model %s not found. Downloading to %s. This may take a while...", model, modelFile)
	if err := downloadModel(ctx, modelBaseURL+model.Filename(), modelFile, log); err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelDownloadFailed, err)
	}

	log.Info(ctx, "Model downloaded successfully: %s", modelFile)
	return modelFile, nil
}

// downloadModel streams url into outputPath, reporting progress along
// the way. The bytes go to a .part file first and only a complete
// download is renamed into place, so a killed process never leaves a
// truncated model at the final path.
func downloadModel(ctx context.Context, url, outputPath string, log logger.Logger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %s", resp.Status)
	}

	// Create truncates whatever an earlier killed run left behind.
	partPath := outputPath + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return err
	}

	reader := io.TeeReader(resp.Body, &progressWriter{
		total: resp.ContentLength,
		report: func(format string, args ...interface{}) {
			log.Info(ctx, format, args...)
		},
	})

	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(partPath)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(partPath)
		return err
	}

	if err := os.Rename(partPath, outputPath); err != nil {
		os.Remove(partPath)
		return err
	}

	return nil
}

// progressWriter tracks download progress
type progressWriter struct {
	total        int64
	downloaded   int64
	lastReported int64
	report       func(format string, args ...interface{})
}

// Write updates progress and logs it every 10MB
func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.downloaded += int64(n)

	if pw.total > 0 && (pw.downloaded-pw.lastReported > 10*1024*1024 || pw.downloaded == pw.total) {
		percentage := float64(pw.downloaded) / float64(pw.total) * 100
		downloadedMB := float64(pw.downloaded) / 1024 / 1024
		totalMB := float64(pw.total) / 1024 / 1024
		pw.report("Downloaded %.1f MB of %.1f MB (%.1f%%)", downloadedMB, totalMB, percentage)
		pw.lastReported = pw.downloaded
	}

	return n, nil
}
