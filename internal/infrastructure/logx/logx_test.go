package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "rid-1")
	require.Equal(t, "rid-1", RequestID(ctx))
	require.Empty(t, RequestID(context.Background()))
	require.NotNil(t, WithFields(ctx))
	require.Same(t, L(), WithFields(context.Background()))
}

func TestNewLoggerReadsEnvAtBuildTime(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	require.True(t, newLogger().Core().Enabled(zapcore.DebugLevel))

	t.Setenv("LOG_LEVEL", "error")
	l := newLogger()
	require.False(t, l.Core().Enabled(zapcore.WarnLevel))
	require.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}
