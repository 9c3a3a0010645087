package worker

import (
	"time"

	"github.com/brebribre/notulen/internal/audio"
	"github.com/brebribre/notulen/internal/logger"
	"github.com/brebribre/notulen/internal/pipeline"
	"github.com/brebribre/notulen/internal/sink"
)

const defaultMaxElapsed = 5 * time.Minute

type implWorker struct {
	decoder     audio.Decoder
	pipeline    pipeline.Pipeline
	sink        sink.Sink
	logger      logger.Logger
	archivedDir string
	maxElapsed  time.Duration
}

// New creates a Worker. The pipeline itself never retries; the worker owns
// the retry policy around the whole call.
func New(dec audio.Decoder, p pipeline.Pipeline, s sink.Sink, archivedDir string, log logger.Logger) Worker {
	return &implWorker{
		decoder:     dec,
		pipeline:    p,
		sink:        s,
		logger:      log,
		archivedDir: archivedDir,
		maxElapsed:  defaultMaxElapsed,
	}
}
