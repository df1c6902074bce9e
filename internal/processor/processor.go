package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaredswanson/speech-to-text-dropbox/internal/scanner"
)

// Run scans the dropbox and processes every item strictly one at a
// time, in name order. Per-item failures are logged and counted; only
// a failed scan or a cancelled context aborts the pass.
func (p *implProcessor) Run(ctx context.Context) (*Summary, error) {
	items, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan dropbox: %w", err)
	}

	summary := &Summary{}
	if len(items) == 0 {
		p.logger.Info(ctx, "Dropbox is empty, nothing to do")
		return summary, nil
	}

	p.logger.Info(ctx, "Found %d item(s) to process", len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			p.logger.Warn(ctx, "Run cancelled after %d of %d items", i, len(items))
			return summary, err
		}

		p.logger.Info(ctx, "[%d/%d] Processing: %s", i+1, len(items), item.Name)
		if err := p.processItem(ctx, item, summary); err != nil {
			p.logger.Warn(ctx, "Run cancelled while processing %s", item.Name)
			return summary, err
		}
	}

	p.logger.Info(ctx, "Run complete: %d transcribed, %d already done, %d archived, %d failed",
		summary.Transcribed, summary.Skipped, summary.Archived, summary.Failed)

	return summary, nil
}

// processItem takes one item through transcribe, write, archive. An
// existing transcript short-circuits straight to archiving, which is
// what makes interrupted runs resumable. Item failures are counted in
// summary; the returned error is only ever the context's.
func (p *implProcessor) processItem(ctx context.Context, item scanner.Item, summary *Summary) error {
	outputPath := filepath.Join(p.cfg.OutputDir(), item.Stem()+".txt")

	if _, err := os.Stat(outputPath); err == nil {
		p.logger.Info(ctx, "Transcript already exists, skipping transcription: %s", outputPath)
		summary.Skipped++
		p.archive(ctx, item, summary)
		return nil
	}

	var text string
	var err error
	switch item.Kind {
	case scanner.KindAudiobook:
		if len(item.Chapters) == 0 {
			p.logger.Warn(ctx, "No audio files found in audiobook directory: %s", item.Path)
			return nil
		}
		text, err = p.transcribeBook(ctx, item)
	default:
		text, err = p.transcriber.Transcribe(ctx, item.Path)
	}
	if err != nil {
		if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			return err
		}
		p.logger.Error(ctx, "Failed to transcribe %s: %v", item.Name, err)
		summary.Failed++
		return nil
	}

	if err := writeFileAtomic(outputPath, []byte(text)); err != nil {
		p.logger.Error(ctx, "Failed to write transcript for %s: %v", item.Name, err)
		summary.Failed++
		return nil
	}

	p.logger.Info(ctx, "Transcript written: %s", outputPath)
	summary.Transcribed++
	p.archive(ctx, item, summary)
	return nil
}

// transcribeBook concatenates chapter transcripts in lexicographic
// order. The first failing chapter aborts the whole book so a partial
// book transcript is never written.
func (p *implProcessor) transcribeBook(ctx context.Context, item scanner.Item) (string, error) {
	var sb strings.Builder

	for i, chapter := range item.Chapters {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := filepath.Base(chapter)
		p.logger.Info(ctx, "Chapter %d/%d: %s", i+1, len(item.Chapters), name)

		text, err := p.transcriber.Transcribe(ctx, chapter)
		if err != nil {
			return "", fmt.Errorf("chapter %s (completed %d of %d): %w", name, i, len(item.Chapters), err)
		}

		sb.WriteString(fmt.Sprintf("\n\n--- Chapter/Part: %s ---\n\n", name))
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// archive moves the input under processed/, adding a timestamp suffix
// when the name is already taken. A missing source means an earlier
// run already archived it.
func (p *implProcessor) archive(ctx context.Context, item scanner.Item, summary *Summary) {
	if _, err := os.Stat(item.Path); os.IsNotExist(err) {
		p.logger.Debug(ctx, "Already archived: %s", item.Name)
		return
	}

	destPath := archivePath(p.cfg.ProcessedDir(), item.Name, item.Kind == scanner.KindAudiobook)

	if err := move(item.Path, destPath); err != nil {
		p.logger.Error(ctx, "Failed to archive %s: %v", item.Name, err)
		summary.Failed++
		return
	}

	p.logger.Info(ctx, "Archived: %s -> %s", item.Name, destPath)
	summary.Archived++
}
