package pipeline

import (
	"time"

	"github.com/brebribre/notulen/internal/logger"
	"github.com/brebribre/notulen/internal/summarizer"
	"github.com/brebribre/notulen/internal/transcriber"
)

type implPipeline struct {
	transcriber    transcriber.Transcriber
	summarizer     summarizer.Summarizer
	splitThreshold time.Duration
	chunkDuration  time.Duration
	logger         logger.Logger
}

// New wires the two stages together with the audio split parameters.
func New(tr transcriber.Transcriber, sum summarizer.Summarizer, splitThreshold, chunkDuration time.Duration, log logger.Logger) Pipeline {
	return &implPipeline{
		transcriber:    tr,
		summarizer:     sum,
		splitThreshold: splitThreshold,
		chunkDuration:  chunkDuration,
		logger:         log,
	}
}
