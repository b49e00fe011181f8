package logging

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
)

type contextKey string

const loggerKey = contextKey("logger")

const defaultPrefix = "Gocy: "

var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// DefaultLogger returns the process-wide logger used when the context carries none
func DefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger(defaultPrefix, log.Lmsgprefix)
	})
	return defaultLogger
}

func NewLogger(prefix string, flag int) *log.Logger {
	return log.New(os.Stderr, prefix, flag)
}

// NewDiscardLogger returns a logger that drops every message, handy for tests and quiet tools
func NewDiscardLogger() *log.Logger {
	return log.New(io.Discard, defaultPrefix, log.Lmsgprefix)
}

func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return DefaultLogger()
}
