package transcriber

import (
	"github.com/brebribre/notulen/internal/backend"
	"github.com/brebribre/notulen/internal/limiter"
	"github.com/brebribre/notulen/internal/logger"
)

type implTranscriber struct {
	backend backend.Transcriber
	limiter *limiter.Limiter
	logger  logger.Logger
}

// New creates a Transcriber that fans segment calls out to the backend
// under the shared concurrency limiter.
func New(b backend.Transcriber, lim *limiter.Limiter, log logger.Logger) Transcriber {
	return &implTranscriber{
		backend: b,
		limiter: lim,
		logger:  log,
	}
}
