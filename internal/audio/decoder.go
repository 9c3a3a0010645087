package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brebribre/notulen/internal/logger"
	"github.com/brebribre/notulen/pkg/executor"
)

// Decoder turns an uploaded audio file into a decoded Clip.
type Decoder interface {
	Decode(ctx context.Context, path string) (Clip, error)
}

type implDecoder struct {
	ffmpegPath string
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// NewDecoder creates a Decoder that normalizes any input format through
// ffmpeg into 16kHz mono 16-bit PCM, the rate the speech models expect.
func NewDecoder(ffmpegPath, tempDir string, exec executor.Executor, log logger.Logger) Decoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &implDecoder{
		ffmpegPath: ffmpegPath,
		tempDir:    tempDir,
		executor:   exec,
		logger:     log,
	}
}

// Decode converts the file at path to a normalized Clip.
func (d *implDecoder) Decode(ctx context.Context, path string) (Clip, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	wavPath := filepath.Join(d.tempDir, base+"_norm.wav")

	d.logger.Info(ctx, "Normalizing audio: %s", path)

	// -vn: drop any video stream
	// -ar 16000: 16kHz sample rate
	// -ac 1: mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	// -y: overwrite output file if exists
	args := []string{
		"-i", path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := d.executor.Execute(ctx, d.ffmpegPath, args...); err != nil {
		return Clip{}, fmt.Errorf("ffmpeg normalize audio: %w", err)
	}
	defer func() {
		if err := os.Remove(wavPath); err != nil {
			d.logger.Warn(ctx, "Failed to remove temp file %s: %v", wavPath, err)
		}
	}()

	data, err := os.ReadFile(wavPath)
	if err != nil {
		return Clip{}, fmt.Errorf("read normalized audio: %w", err)
	}

	clip, err := FromWAV(data)
	if err != nil {
		return Clip{}, err
	}

	d.logger.Debug(ctx, "Decoded %s: %s at %dHz, %d channel(s)",
		path, clip.Duration(), clip.Rate, clip.Channels)
	return clip, nil
}
