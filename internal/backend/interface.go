package backend

import (
	"context"
	"encoding/json"
)

// Transcriber converts one bounded audio segment to text.
type Transcriber interface {
	// Transcribe sends 16-bit PCM WAV bytes to the speech-to-text model
	// and returns the recognized text.
	Transcribe(ctx context.Context, wavData []byte, filename string) (string, error)
}

// StructuredRequest describes one schema-constrained completion call.
type StructuredRequest struct {
	System      string
	User        string
	SchemaName  string
	Schema      json.Marshaler
	Temperature float32
}

// CompletionRequest describes one free-form completion call.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Refusal is a model's policy-driven declination to produce the requested
// content. It is a result variant, never an error.
type Refusal struct {
	Reason string
}

// Completer is a text-completion model.
type Completer interface {
	// CompleteStructured asks the model for output constrained to the
	// request's JSON schema and unmarshals it into out. A non-nil Refusal
	// means the model declined; out is left untouched in that case.
	CompleteStructured(ctx context.Context, req StructuredRequest, out any) (*Refusal, error)

	// Complete asks the model for a plain text answer.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
