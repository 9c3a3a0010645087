// Package chunker splits transcripts into overlapping token-bounded windows
// so oversized inputs fit the completion model's context.
package chunker

import (
	"fmt"
	"iter"

	"github.com/brebribre/notulen/pkg/token"
)

// Chunk tokenizes the transcript once and yields decoded windows of at most
// targetTokens tokens. Each window's start advances by
// targetTokens-overlapTokens from the previous one, so consecutive chunks
// share an overlap region. The sequence is finite and restartable; restarts
// reuse the same token pass.
//
// Every token of the transcript appears in at least one chunk, and chunks
// are yielded in transcript order.
func Chunk(tok token.Tokenizer, transcript string, targetTokens, overlapTokens int) (iter.Seq[string], error) {
	if targetTokens <= 0 {
		return nil, fmt.Errorf("chunker: target_tokens must be positive, got %d", targetTokens)
	}
	if overlapTokens < 0 {
		return nil, fmt.Errorf("chunker: overlap_tokens must not be negative, got %d", overlapTokens)
	}
	step := targetTokens - overlapTokens
	if step <= 0 {
		return nil, fmt.Errorf("chunker: overlap_tokens %d must be smaller than target_tokens %d", overlapTokens, targetTokens)
	}

	ids := tok.Encode(transcript)

	return func(yield func(string) bool) {
		// Small inputs need no windowing; yield the transcript verbatim so
		// no decode round-trip can perturb it.
		if len(ids) <= targetTokens {
			yield(transcript)
			return
		}

		for i := 0; i < len(ids); i += step {
			end := min(i+targetTokens, len(ids))
			if !yield(tok.Decode(ids[i:end])) {
				return
			}
		}
	}, nil
}

// Collect materializes the chunk sequence into a slice.
func Collect(seq iter.Seq[string]) []string {
	var chunks []string
	for c := range seq {
		chunks = append(chunks, c)
	}
	return chunks
}
