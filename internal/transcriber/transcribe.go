package transcriber

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/brebribre/notulen/internal/audio"
)

// TranscribeAll transcribes every segment and joins the results in input
// order with single-space separators. Backend calls run concurrently under
// the limiter; completion order never affects the output. Any segment
// failure fails the whole call, no partial transcript is returned.
func (t *implTranscriber) TranscribeAll(ctx context.Context, segments []audio.Clip) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("transcriber: no segments")
	}

	if len(segments) == 1 {
		return t.transcribeOne(ctx, 0, segments[0])
	}

	t.logger.Info(ctx, "Transcribing %d segments", len(segments))

	// First failure cancels the remaining in-flight calls.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]string, len(segments))
	errs := make([]error, len(segments))

	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		go func(i int, seg audio.Clip) {
			defer wg.Done()
			text, err := t.transcribeOne(ctx, i, seg)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = text
		}(i, seg)
	}
	wg.Wait()

	if err := firstError(errs); err != nil {
		return "", err
	}

	return strings.Join(results, " "), nil
}

func (t *implTranscriber) transcribeOne(ctx context.Context, index int, seg audio.Clip) (string, error) {
	if err := t.limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer t.limiter.Release()

	wavData, err := seg.WAV()
	if err != nil {
		return "", fmt.Errorf("encode segment %d: %w", index, err)
	}

	text, err := t.backend.Transcribe(ctx, wavData, fmt.Sprintf("segment_%03d.wav", index))
	if err != nil {
		return "", fmt.Errorf("transcribe segment %d: %w", index, err)
	}

	t.logger.Debug(ctx, "Segment %d transcribed (%d chars)", index, len(text))
	return text, nil
}

// firstError picks the failure that caused the abort, skipping the
// cancellations it triggered in sibling calls.
func firstError(errs []error) error {
	var fallback error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			return err
		}
		if fallback == nil {
			fallback = err
		}
	}
	return fallback
}
