package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/brebribre/notulen/internal/backend"
	"github.com/brebribre/notulen/internal/chunker"
)

// safetyMarginTokens reserves room in the input budget for the system
// prompt and the completion itself.
const safetyMarginTokens = 500

const schemaName = "meeting_summary"

const systemPrompt = "You are a world-class meetings assistant. " +
	"Create a detailed summary of the meeting, including action items and participants. " +
	"Never hallucinate your data. If the transcript is not long enough, just return an empty summary or participants. " +
	"Never miss any factual information. If you detect a participant, always use the full name if possible. " +
	"If there are multiple topics to cover, make sure to always include all the topics in the summary."

// Summarize routes on token count: transcripts under the budget get one
// structured call, larger ones are chunked, summarized concurrently and
// merged by one reduce call.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (Result, error) {
	tokens := s.tok.Count(transcript)
	if tokens < s.cfg.MaxInputTokens-safetyMarginTokens {
		return s.callStructured(ctx, transcript)
	}

	seq, err := chunker.Chunk(s.tok, transcript, s.cfg.TargetChunkTokens, s.cfg.OverlapTokens)
	if err != nil {
		return Result{}, err
	}
	chunks := chunker.Collect(seq)

	s.logger.Info(ctx, "Transcript has %d tokens, mapping %d chunks", tokens, len(chunks))

	partials, refusal, err := s.mapChunks(ctx, chunks)
	if err != nil {
		return Result{}, err
	}
	if refusal != "" {
		return Result{Refusal: refusal}, nil
	}

	return s.reduce(ctx, partials)
}

// mapChunks issues one structured call per chunk concurrently and collects
// the partial summaries in chunk order. The first error or refusal cancels
// the outstanding calls.
func (s *implSummarizer) mapChunks(ctx context.Context, chunks []string) ([]MeetingSummary, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			res, err := s.callStructured(ctx, chunk)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = res
			if res.Refused() {
				cancel()
			}
		}(i, chunk)
	}
	wg.Wait()

	var fallback error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			return nil, "", err
		}
		if fallback == nil {
			fallback = err
		}
	}

	partials := make([]MeetingSummary, 0, len(chunks))
	for _, res := range results {
		if res.Refused() {
			return nil, res.Refusal, nil
		}
		if res.Summary != nil {
			partials = append(partials, *res.Summary)
		}
	}
	if fallback != nil {
		return nil, "", fallback
	}

	return partials, "", nil
}

// reduce merges the ordered partial summaries with one more structured
// call. Deduplication of action items and participants is delegated to the
// model's semantic understanding, not exact-string matching.
func (s *implSummarizer) reduce(ctx context.Context, partials []MeetingSummary) (Result, error) {
	texts := make([]string, len(partials))
	for i, p := range partials {
		texts[i] = p.Summary
	}

	prompt := fmt.Sprintf(
		"These are partial summaries:\n%s\n\nMerge them into one cohesive summary, deduplicating action_items and participants.",
		strings.Join(texts, "\n\n"),
	)

	s.logger.Debug(ctx, "Reducing %d partial summaries", len(partials))
	return s.callStructured(ctx, prompt)
}

// callStructured performs one schema-constrained backend call under the
// limiter, with deterministic decoding.
func (s *implSummarizer) callStructured(ctx context.Context, content string) (Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return Result{}, err
	}
	defer s.limiter.Release()

	var out MeetingSummary
	refusal, err := s.backend.CompleteStructured(ctx, backend.StructuredRequest{
		System:      systemPrompt,
		User:        content,
		SchemaName:  schemaName,
		Schema:      s.schema,
		Temperature: 0,
	}, &out)
	if err != nil {
		return Result{}, err
	}
	if refusal != nil {
		return Result{Refusal: refusal.Reason}, nil
	}

	return Result{Summary: &out}, nil
}
