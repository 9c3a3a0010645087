package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug level", "debug", "text"},
		{"info level", "info", "text"},
		{"warn level", "warn", "json"},
		{"error level", "error", "json"},
		{"invalid level", "invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, tt.format)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	log := New("info", "text")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	// Test with formatting
	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"info", "info", logrus.InfoLevel},
		{"warn", "warn", logrus.WarnLevel},
		{"error", "error", logrus.ErrorLevel},
		{"unknown defaults to info", "verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, "text").(*implLogger)
			if got := log.logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
