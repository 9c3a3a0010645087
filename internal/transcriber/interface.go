package transcriber

import (
	"context"

	"github.com/brebribre/notulen/internal/audio"
)

// Transcriber converts ordered audio segments into one transcript.
type Transcriber interface {
	TranscribeAll(ctx context.Context, segments []audio.Clip) (string, error)
}
