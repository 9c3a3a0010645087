package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/brebribre/notulen/internal/audio"
	"github.com/brebribre/notulen/internal/summarizer"
)

// Process orchestrates split → transcribe → summarize for one recording.
// No retries here; callers own their retry policy.
func (p *implPipeline) Process(ctx context.Context, clip audio.Clip) (string, summarizer.Result, error) {
	startTime := time.Now()

	// Step 1: split oversized audio into bounded segments
	segments := audio.Split(clip, p.splitThreshold, p.chunkDuration)
	p.logger.Info(ctx, "Audio is %s, split into %d segment(s)", clip.Duration(), len(segments))

	// Step 2: transcribe segments concurrently, join in order
	transcript, err := p.transcriber.TranscribeAll(ctx, segments)
	if err != nil {
		return "", summarizer.Result{}, fmt.Errorf("transcribe: %w", err)
	}

	// Step 3: summarize the transcript
	result, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", summarizer.Result{}, fmt.Errorf("summarize: %w", err)
	}

	if result.Refused() {
		p.logger.Warn(ctx, "Summarization refused: %s", result.Refusal)
	} else {
		p.logger.Info(ctx, "Processing completed in %s", time.Since(startTime))
	}

	return transcript, result, nil
}
