package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
)

// whisper.cpp expects 16kHz mono 16-bit PCM input.
const (
	targetSampleRate = 16000
	targetChannels   = 1
	targetBitDepth   = 16
)

// isNativeWav reports whether the file is already a 16kHz mono 16-bit
// PCM WAV that whisper.cpp can read without conversion.
func isNativeWav(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if dec.Err() != nil {
		return false
	}

	return dec.WavAudioFormat == 1 &&
		int(dec.SampleRate) == targetSampleRate &&
		int(dec.NumChans) == targetChannels &&
		int(dec.BitDepth) == targetBitDepth
}

// convertToWav decodes any supported input into a whisper-ready WAV
// inside dir.
func (t *implTranscriber) convertToWav(ctx context.Context, audioPath, dir string) (string, error) {
	wavPath := filepath.Join(dir, "audio.wav")

	// -vn drops embedded cover art streams common in podcast mp3s
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", strconv.Itoa(targetSampleRate),
		"-ac", strconv.Itoa(targetChannels),
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert: %w", err)
	}

	return wavPath, nil
}
