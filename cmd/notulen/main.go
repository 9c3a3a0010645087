package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brebribre/notulen/internal/audio"
	"github.com/brebribre/notulen/internal/backend"
	"github.com/brebribre/notulen/internal/backend/gemini"
	"github.com/brebribre/notulen/internal/backend/openai"
	"github.com/brebribre/notulen/internal/config"
	"github.com/brebribre/notulen/internal/limiter"
	"github.com/brebribre/notulen/internal/logger"
	"github.com/brebribre/notulen/internal/pipeline"
	"github.com/brebribre/notulen/internal/sink"
	"github.com/brebribre/notulen/internal/summarizer"
	"github.com/brebribre/notulen/internal/transcriber"
	"github.com/brebribre/notulen/internal/watcher"
	"github.com/brebribre/notulen/internal/worker"
	"github.com/brebribre/notulen/pkg/executor"
	"github.com/brebribre/notulen/pkg/token"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	// Credentials come from the environment here, at the composition root,
	// and nowhere else.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "notulen - meeting transcription pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Backend: %s (%s / %s)", cfg.Backend.Provider, cfg.Backend.Model, cfg.Backend.TranscribeModel)
	log.Info(ctx, "Concurrency limit: %d", cfg.Summarize.Concurrency)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	transcribeBackend, completeBackend, err := buildBackends(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Failed to create backend: %v", err)
		os.Exit(1)
	}

	tok, err := token.ForModel(cfg.Backend.Model)
	if err != nil {
		log.Error(ctx, "Failed to create tokenizer: %v", err)
		os.Exit(1)
	}

	// One limiter shared by both stages caps total in-flight backend calls.
	lim := limiter.New(cfg.Summarize.Concurrency)

	tr := transcriber.New(transcribeBackend, lim, log)
	sum, err := summarizer.New(completeBackend, tok, lim, summarizer.Config{
		MaxInputTokens:    cfg.Summarize.MaxInputTokens,
		TargetChunkTokens: cfg.Summarize.TargetChunkTokens,
		OverlapTokens:     cfg.Summarize.ChunkOverlapTokens,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}

	p := pipeline.New(tr, sum,
		time.Duration(cfg.Audio.SplitThresholdMS)*time.Millisecond,
		time.Duration(cfg.Audio.ChunkDurationMS)*time.Millisecond,
		log)

	dec := audio.NewDecoder(cfg.Audio.FFmpegPath, cfg.Paths.Temp, executor.New(), log)
	snk := sink.New(cfg.Paths.Output, log)
	wrk := worker.New(dec, p, snk, cfg.Paths.Archived, log)

	w, err := watcher.New(cfg.Paths.Inbox, wrk.Handle, log, cfg.Performance.MaxConcurrentFiles)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
}

// buildBackends constructs the provider selected in config. Both stages
// talk to the same provider.
func buildBackends(ctx context.Context, cfg *config.Config) (backend.Transcriber, backend.Completer, error) {
	switch cfg.Backend.Provider {
	case "openai":
		client, err := openai.New(openai.Config{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			Model:           cfg.Backend.Model,
			TranscribeModel: cfg.Backend.TranscribeModel,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case "gemini":
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			Model:           cfg.Backend.Model,
			TranscribeModel: cfg.Backend.TranscribeModel,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	}
	return nil, nil, fmt.Errorf("unsupported backend provider: %s", cfg.Backend.Provider)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
