package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

type implTokenizer struct {
	enc *tiktoken.Tiktoken
}

// ForModel creates a Tokenizer matching the given model. Models unknown to
// tiktoken fall back to cl100k_base, which keeps counts close enough for
// budget math on newer model names.
func ForModel(model string) (Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("get encoding for model %s: %w", model, err)
		}
	}

	return &implTokenizer{enc: enc}, nil
}

func (t *implTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *implTokenizer) Decode(ids []int) string {
	return t.enc.Decode(ids)
}

func (t *implTokenizer) Count(text string) int {
	return len(t.Encode(text))
}
