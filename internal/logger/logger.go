package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface pipeline components depend on.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type implLogger struct {
	logger *logrus.Logger
}

// New creates a Logger at the given level. Format "json" switches to JSON
// output; anything else logs human-readable text.
func New(level, format string) Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)

	if strings.ToLower(format) == "json" {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	}

	switch strings.ToLower(level) {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &implLogger{logger: base}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Errorf(msg, args...)
}
