package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brebribre/notulen/internal/logger"
)

type implSink struct {
	outputDir string
	logger    logger.Logger
}

// New creates a Sink writing one JSON record, a plain transcript and a
// minutes document per meeting into outputDir.
func New(outputDir string, log logger.Logger) Sink {
	return &implSink{
		outputDir: outputDir,
		logger:    log,
	}
}

func (s *implSink) Save(ctx context.Context, rec Record) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(s.outputDir, rec.MeetingID+".json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	txtPath := filepath.Join(s.outputDir, rec.MeetingID+"_transcript.txt")
	if err := os.WriteFile(txtPath, []byte(rec.Transcript), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	// No minutes document for a refused summary.
	if rec.Summary == nil {
		s.logger.Warn(ctx, "Meeting %s saved without minutes (refusal: %s)", rec.MeetingID, rec.Refusal)
		return nil
	}

	docxPath := filepath.Join(s.outputDir, rec.MeetingID+"_minutes.docx")
	if err := writeMinutes(rec, docxPath); err != nil {
		return fmt.Errorf("write minutes: %w", err)
	}

	s.logger.Info(ctx, "Saved meeting %s: %s, %s, %s", rec.MeetingID, jsonPath, txtPath, docxPath)
	return nil
}
