package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/brebribre/notulen/internal/sink"
)

// Handle runs the pipeline for one file with exponential backoff around
// transient failures, then moves the source into the archived directory.
func (w *implWorker) Handle(ctx context.Context, path string) error {
	meetingID := uuid.New().String()
	w.logger.Info(ctx, "Processing %s as meeting %s", path, meetingID)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = w.maxElapsed

	op := func() error {
		return w.handleOnce(ctx, meetingID, path)
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	w.archive(ctx, path)
	return nil
}

func (w *implWorker) handleOnce(ctx context.Context, meetingID, path string) error {
	clip, err := w.decoder.Decode(ctx, path)
	if err != nil {
		return err
	}

	transcript, result, err := w.pipeline.Process(ctx, clip)
	if err != nil {
		return err
	}

	rec := sink.Record{
		MeetingID:  meetingID,
		SourcePath: path,
		Transcript: transcript,
		Summary:    result.Summary,
		Refusal:    result.Refusal,
		CreatedAt:  time.Now().UTC(),
	}
	return w.sink.Save(ctx, rec)
}

// archive moves the processed file out of the inbox so it is not picked up
// again. Best effort; the results are already persisted.
func (w *implWorker) archive(ctx context.Context, path string) {
	if err := os.MkdirAll(w.archivedDir, 0755); err != nil {
		w.logger.Warn(ctx, "Failed to create archived dir: %v", err)
		return
	}
	dest := filepath.Join(w.archivedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		w.logger.Warn(ctx, "Failed to archive %s: %v", path, err)
		return
	}
	w.logger.Debug(ctx, "Archived %s -> %s", path, dest)
}
