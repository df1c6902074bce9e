package whisper

import "errors"

// Common error types for the whisper package
var (
	// ErrBinaryNotFound indicates that no whisper.cpp executable could be located
	ErrBinaryNotFound = errors.New("whisper executable not found")

	// ErrFFmpegNotFound indicates that ffmpeg is not installed or not on PATH
	ErrFFmpegNotFound = errors.New("ffmpeg executable not found")

	// ErrUnknownModel indicates a model selector outside the supported set
	ErrUnknownModel = errors.New("unknown whisper model size")

	// ErrModelDownloadFailed indicates that downloading the model failed
	ErrModelDownloadFailed = errors.New("failed to download whisper model")

	// ErrTranscriptionFailed indicates that the transcription process failed
	ErrTranscriptionFailed = errors.New("transcription failed")
)
