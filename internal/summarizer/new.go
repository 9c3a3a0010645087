package summarizer

import (
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/brebribre/notulen/internal/backend"
	"github.com/brebribre/notulen/internal/limiter"
	"github.com/brebribre/notulen/internal/logger"
	"github.com/brebribre/notulen/pkg/token"
)

// Config holds the token-budget knobs for summarization.
type Config struct {
	MaxInputTokens    int // completion model's input budget
	TargetChunkTokens int
	OverlapTokens     int
}

type implSummarizer struct {
	backend backend.Completer
	tok     token.Tokenizer
	limiter *limiter.Limiter
	logger  logger.Logger
	cfg     Config
	schema  *jsonschema.Definition
}

// New creates a Summarizer. Invalid chunking parameters are rejected here,
// at construction, not on first use.
func New(b backend.Completer, tok token.Tokenizer, lim *limiter.Limiter, cfg Config, log logger.Logger) (Summarizer, error) {
	if cfg.MaxInputTokens <= safetyMarginTokens {
		return nil, fmt.Errorf("summarizer: max_input_tokens %d must exceed the %d-token safety margin", cfg.MaxInputTokens, safetyMarginTokens)
	}
	if cfg.TargetChunkTokens-cfg.OverlapTokens <= 0 {
		return nil, fmt.Errorf("summarizer: chunk_overlap_tokens %d must be smaller than target_chunk_tokens %d", cfg.OverlapTokens, cfg.TargetChunkTokens)
	}

	schema, err := jsonschema.GenerateSchemaForType(MeetingSummary{})
	if err != nil {
		return nil, fmt.Errorf("summarizer: generate schema: %w", err)
	}

	return &implSummarizer{
		backend: b,
		tok:     tok,
		limiter: lim,
		logger:  log,
		cfg:     cfg,
		schema:  schema,
	}, nil
}
