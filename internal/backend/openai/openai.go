// Package openai implements the transcription and completion backends on
// the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/brebribre/notulen/internal/backend"
)

const providerName = "openai"

// Config holds the credentials and model identifiers for the provider.
// The API key is passed in by the composition root; this package never
// reads the process environment.
type Config struct {
	APIKey          string
	Model           string // completion model, e.g. gpt-4o
	TranscribeModel string // speech-to-text model, e.g. gpt-4o-transcribe
}

// Client implements backend.Transcriber and backend.Completer.
type Client struct {
	api             *openai.Client
	model           string
	transcribeModel string
}

// New creates a Client. A missing API key is a construction error.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, backend.ErrNoAPIKey
	}
	return &Client{
		api:             openai.NewClient(cfg.APIKey),
		model:           cfg.Model,
		transcribeModel: cfg.TranscribeModel,
	}, nil
}

// Transcribe sends one WAV segment to the speech-to-text model.
func (c *Client) Transcribe(ctx context.Context, wavData []byte, filename string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: filename,
		Reader:   bytes.NewReader(wavData),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", &backend.Error{Provider: providerName, Op: "transcribe", Err: err}
	}
	return resp.Text, nil
}

// CompleteStructured requests output constrained to the schema and
// unmarshals it into out. The model's refusal, when present, is returned
// as a result variant.
func (c *Client) CompleteStructured(ctx context.Context, req backend.StructuredRequest, out any) (*backend.Refusal, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature(req.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, &backend.Error{Provider: providerName, Op: "complete_structured", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &backend.Error{Provider: providerName, Op: "complete_structured", Err: errors.New("no choices in response")}
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return &backend.Refusal{Reason: msg.Refusal}, nil
	}

	if err := json.Unmarshal([]byte(msg.Content), out); err != nil {
		return nil, &backend.SchemaError{Raw: msg.Content, Err: err}
	}
	return nil, nil
}

// Complete requests a plain text answer.
func (c *Client) Complete(ctx context.Context, req backend.CompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", &backend.Error{Provider: providerName, Op: "complete", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &backend.Error{Provider: providerName, Op: "complete", Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// temperature works around the client library omitting a zero temperature
// from the request body, which would let the API default to 1. The smallest
// non-zero float still decodes deterministically.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
