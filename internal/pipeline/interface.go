package pipeline

import (
	"context"

	"github.com/brebribre/notulen/internal/audio"
	"github.com/brebribre/notulen/internal/summarizer"
)

// Pipeline runs the full audio → transcript → summary flow.
type Pipeline interface {
	// Process transcribes the recording and summarizes the transcript,
	// returning both for the caller to persist. A failure in either stage
	// aborts the call; nothing partial is returned.
	Process(ctx context.Context, clip audio.Clip) (string, summarizer.Result, error)
}
