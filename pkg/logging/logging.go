// Package logging wires zap with per-request context support. Init installs
// the global logger used via zap.S()/zap.L(); request-scoped loggers carry a
// request_id field through context.
package logging

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const loggerKey contextKey = "logger"

// Init builds a production logger at the given level and installs it as the
// zap global. Level defaults to info when the string is empty or unknown.
func Init(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// WithRequestID returns a context carrying a logger tagged with a fresh
// request_id.
func WithRequestID(ctx context.Context) context.Context {
	logger := zap.L().With(zap.String("request_id", uuid.NewString()))
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request-scoped logger, or the global logger when
// the context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.L()
}
