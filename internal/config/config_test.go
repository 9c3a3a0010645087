package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Backend: BackendConfig{Provider: "openai", Model: "gpt-4o"},
				Paths:   PathsConfig{Inbox: "data/inbox", Output: "data/output"},
			},
			wantErr: false,
		},
		{
			name: "missing model",
			config: Config{
				Backend: BackendConfig{Provider: "openai"},
				Paths:   PathsConfig{Inbox: "data/inbox", Output: "data/output"},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Backend: BackendConfig{Provider: "watson", Model: "m"},
				Paths:   PathsConfig{Inbox: "data/inbox", Output: "data/output"},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Backend: BackendConfig{Provider: "openai", Model: "gpt-4o"},
			},
			wantErr: true,
		},
		{
			name: "overlap exceeds chunk target",
			config: Config{
				Backend:   BackendConfig{Provider: "openai", Model: "gpt-4o"},
				Paths:     PathsConfig{Inbox: "data/inbox", Output: "data/output"},
				Summarize: SummarizeConfig{TargetChunkTokens: 100, ChunkOverlapTokens: 100},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Backend: BackendConfig{Model: "gpt-4o"},
		Paths:   PathsConfig{Inbox: "data/inbox", Output: "data/output"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Backend.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Backend.Provider)
	}
	if cfg.Backend.TranscribeModel != "gpt-4o" {
		t.Errorf("TranscribeModel = %q, want model fallback", cfg.Backend.TranscribeModel)
	}
	if cfg.Summarize.MaxInputTokens != 4096 {
		t.Errorf("MaxInputTokens = %d, want 4096", cfg.Summarize.MaxInputTokens)
	}
	if cfg.Summarize.TargetChunkTokens != 3500 {
		t.Errorf("TargetChunkTokens = %d, want 3500", cfg.Summarize.TargetChunkTokens)
	}
	if cfg.Summarize.ChunkOverlapTokens != 200 {
		t.Errorf("ChunkOverlapTokens = %d, want 200", cfg.Summarize.ChunkOverlapTokens)
	}
	if cfg.Summarize.Concurrency != 5 {
		t.Errorf("Concurrency = %d, want 5", cfg.Summarize.Concurrency)
	}
	if cfg.Audio.SplitThresholdMS != 60000 {
		t.Errorf("SplitThresholdMS = %d, want 60000", cfg.Audio.SplitThresholdMS)
	}
	if cfg.Audio.ChunkDurationMS != 120000 {
		t.Errorf("ChunkDurationMS = %d, want 120000", cfg.Audio.ChunkDurationMS)
	}
	if cfg.Performance.MaxConcurrentFiles != 2 {
		t.Errorf("MaxConcurrentFiles = %d, want 2", cfg.Performance.MaxConcurrentFiles)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
backend:
  provider: "openai"
  model: "gpt-4o"
  transcribe_model: "gpt-4o-transcribe"

summarize:
  max_input_tokens: 4096
  target_chunk_tokens: 3500
  chunk_overlap_tokens: 200
  concurrency: 5

audio:
  split_threshold_ms: 60000
  chunk_duration_ms: 120000

paths:
  inbox: "data/inbox"
  output: "data/output"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.TranscribeModel != "gpt-4o-transcribe" {
		t.Errorf("TranscribeModel = %v, want %v", cfg.Backend.TranscribeModel, "gpt-4o-transcribe")
	}

	if cfg.Paths.Inbox != "data/inbox" {
		t.Errorf("Inbox = %v, want %v", cfg.Paths.Inbox, "data/inbox")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
