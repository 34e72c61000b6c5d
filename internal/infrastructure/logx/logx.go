package logx

import (
	"context"
	"strings"
	"sync"

	"stockquotes-ingestor/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	once   sync.Once
)

type ctxKey struct{}

// newLogger reads LOG_LEVEL and ENV at call time, so it must run after
// the process has loaded .env.
func newLogger() *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	appCfg := config.Load()
	if appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}
	zapCfg.InitialFields = map[string]any{"env": appCfg.Env}

	l, err := zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	return l
}

// L returns the process logger, building it on first use.
func L() *zap.Logger {
	once.Do(func() { logger = newLogger() })
	return logger
}

// ContextWithRequestID stores a request id for WithFields.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithFields returns the base logger enriched with the request id from ctx.
func WithFields(ctx context.Context) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return L().With(zap.String("request_id", id))
	}
	return L()
}
