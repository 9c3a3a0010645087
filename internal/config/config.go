package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Summarize   SummarizeConfig   `yaml:"summarize"`
	Audio       AudioConfig       `yaml:"audio"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type BackendConfig struct {
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	TranscribeModel string `yaml:"transcribe_model"`
}

type SummarizeConfig struct {
	MaxInputTokens     int `yaml:"max_input_tokens"`
	TargetChunkTokens  int `yaml:"target_chunk_tokens"`
	ChunkOverlapTokens int `yaml:"chunk_overlap_tokens"`
	Concurrency        int `yaml:"concurrency"`
}

type PerformanceConfig struct {
	MaxConcurrentFiles int `yaml:"max_concurrent_files"`
}

type AudioConfig struct {
	SplitThresholdMS int    `yaml:"split_threshold_ms"`
	ChunkDurationMS  int    `yaml:"chunk_duration_ms"`
	FFmpegPath       string `yaml:"ffmpeg_path"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.Provider == "" {
		c.Backend.Provider = "openai"
	}
	if c.Backend.Provider != "openai" && c.Backend.Provider != "gemini" {
		return fmt.Errorf("backend.provider must be openai or gemini, got %q", c.Backend.Provider)
	}
	if c.Backend.Model == "" {
		return fmt.Errorf("backend.model is required")
	}
	if c.Backend.TranscribeModel == "" {
		c.Backend.TranscribeModel = c.Backend.Model
	}

	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Summarize.MaxInputTokens == 0 {
		c.Summarize.MaxInputTokens = 4096
	}
	if c.Summarize.TargetChunkTokens == 0 {
		c.Summarize.TargetChunkTokens = 3500
	}
	if c.Summarize.ChunkOverlapTokens == 0 {
		c.Summarize.ChunkOverlapTokens = 200
	}
	if c.Summarize.ChunkOverlapTokens >= c.Summarize.TargetChunkTokens {
		return fmt.Errorf("summarize.chunk_overlap_tokens %d must be smaller than target_chunk_tokens %d",
			c.Summarize.ChunkOverlapTokens, c.Summarize.TargetChunkTokens)
	}
	if c.Summarize.Concurrency == 0 {
		c.Summarize.Concurrency = 5
	}

	if c.Audio.SplitThresholdMS == 0 {
		c.Audio.SplitThresholdMS = 60000
	}
	if c.Audio.ChunkDurationMS == 0 {
		c.Audio.ChunkDurationMS = 120000
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}

	if c.Performance.MaxConcurrentFiles == 0 {
		c.Performance.MaxConcurrentFiles = 2
	}

	return nil
}
