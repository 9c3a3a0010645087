// Package gemini implements the transcription and completion backends on
// the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/brebribre/notulen/internal/backend"
)

const providerName = "gemini"

const transcribePrompt = "Transcribe this meeting recording verbatim. Return only the spoken words, nothing else."

// Config holds the credentials and model identifiers for the provider.
type Config struct {
	APIKey          string
	Model           string // completion model, e.g. gemini-2.5-flash
	TranscribeModel string // audio-capable model, may equal Model
}

// Client implements backend.Transcriber and backend.Completer.
type Client struct {
	api             *genai.Client
	model           string
	transcribeModel string
}

// New creates a Client. A missing API key is a construction error.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, backend.ErrNoAPIKey
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	transcribeModel := cfg.TranscribeModel
	if transcribeModel == "" {
		transcribeModel = cfg.Model
	}

	return &Client{
		api:             api,
		model:           cfg.Model,
		transcribeModel: transcribeModel,
	}, nil
}

// Transcribe sends one WAV segment inline and asks for a verbatim
// transcript.
func (c *Client) Transcribe(ctx context.Context, wavData []byte, filename string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(wavData, "audio/wav"),
			genai.NewPartFromText(transcribePrompt),
		}, genai.RoleUser),
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.transcribeModel, contents, nil)
	if err != nil {
		return "", &backend.Error{Provider: providerName, Op: "transcribe", Err: err}
	}
	if refusal := blockReason(resp); refusal != "" {
		return "", &backend.Error{Provider: providerName, Op: "transcribe", Err: fmt.Errorf("blocked: %s", refusal)}
	}

	text := resp.Text()
	if text == "" {
		return "", &backend.Error{Provider: providerName, Op: "transcribe", Err: errors.New("empty response")}
	}
	return text, nil
}

// CompleteStructured requests JSON output constrained to the schema and
// unmarshals it into out.
func (c *Client) CompleteStructured(ctx context.Context, req backend.StructuredRequest, out any) (*backend.Refusal, error) {
	schema, err := schemaValue(req.Schema)
	if err != nil {
		return nil, fmt.Errorf("gemini: prepare schema: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:        genai.Ptr(req.Temperature),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: schema,
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(req.User), config)
	if err != nil {
		return nil, &backend.Error{Provider: providerName, Op: "complete_structured", Err: err}
	}
	if refusal := blockReason(resp); refusal != "" {
		return &backend.Refusal{Reason: refusal}, nil
	}

	text := resp.Text()
	if text == "" {
		return nil, &backend.Error{Provider: providerName, Op: "complete_structured", Err: errors.New("empty response")}
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return nil, &backend.SchemaError{Raw: text, Err: err}
	}
	return nil, nil
}

// Complete requests a plain text answer.
func (c *Client) Complete(ctx context.Context, req backend.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(req.User), config)
	if err != nil {
		return "", &backend.Error{Provider: providerName, Op: "complete", Err: err}
	}
	if refusal := blockReason(resp); refusal != "" {
		return "", &backend.Error{Provider: providerName, Op: "complete", Err: fmt.Errorf("blocked: %s", refusal)}
	}
	return resp.Text(), nil
}

// schemaValue converts the request's JSON schema into the plain value the
// Gemini config accepts.
func schemaValue(schema json.Marshaler) (any, error) {
	raw, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var value map[string]any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// blockReason maps Gemini's safety blocks onto the refusal convention.
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		if resp.PromptFeedback.BlockReasonMessage != "" {
			return resp.PromptFeedback.BlockReasonMessage
		}
		return string(resp.PromptFeedback.BlockReason)
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety || cand.FinishReason == genai.FinishReasonProhibitedContent {
			return string(cand.FinishReason)
		}
	}
	return ""
}
