package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/brebribre/notulen/internal/backend"
)

const (
	askSystemPrompt = "You are a helpful assistant."
	askTemperature  = 0.5
	askMaxTokens    = 500
)

// Ask answers a question against a stored transcript.
func (s *implSummarizer) Ask(ctx context.Context, transcript, question string) (string, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer s.limiter.Release()

	prompt := fmt.Sprintf(
		"You are given the following transcript:\n\n%s\n\nBased on the transcript, answer the following question:\n%s",
		transcript, question,
	)

	answer, err := s.backend.Complete(ctx, backend.CompletionRequest{
		System:      askSystemPrompt,
		User:        prompt,
		Temperature: askTemperature,
		MaxTokens:   askMaxTokens,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
