package sink

import (
	"context"
	"time"

	"github.com/brebribre/notulen/internal/summarizer"
)

// Record is one processed meeting, keyed by its meeting identifier.
type Record struct {
	MeetingID  string                     `json:"meeting_id"`
	SourcePath string                     `json:"source_path"`
	Transcript string                     `json:"transcript"`
	Summary    *summarizer.MeetingSummary `json:"summary,omitempty"`
	Refusal    string                     `json:"refusal,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// Sink persists pipeline results.
type Sink interface {
	Save(ctx context.Context, rec Record) error
}
