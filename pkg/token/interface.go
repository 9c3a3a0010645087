package token

// Tokenizer converts text to model token ids and back. It must match the
// tokenizer of the completion model so token-budget math stays exact.
type Tokenizer interface {
	Encode(text string) []int
	Decode(ids []int) string
	Count(text string) int
}
