package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amhellmund/redo/internal/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	ctx := logger.WithContext(context.Background(), nop)

	assert.Same(t, nop, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSingleton(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	require.NotNil(t, a)
	assert.Same(t, a, b)

	// warn-level fallback still accepts every call
	a.Debug("debug message")
	a.Warn("warn message", logger.String("key", "value"))
}

func TestFromContext_CarriesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := logger.FromZap(zap.New(core))

	ctx := logger.WithContext(context.Background(), base.With(logger.String("request_id", "abc-123")))
	logger.FromContext(ctx).Info("health probed")

	entries := logs.FilterMessage("health probed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	for _, format := range []string{logger.FormatJSON, logger.FormatConsole} {
		l, err := logger.New(logger.Config{
			Level:       "error",
			Format:      format,
			OutputPaths: []string{"stderr"},
		})
		require.NoError(t, err)
		require.NotNil(t, l)
		l.Info("filtered")
	}
}

func TestNew_InvalidOutputPath(t *testing.T) {
	t.Parallel()

	_, err := logger.New(logger.Config{OutputPaths: []string{"/nonexistent-dir/redo/out.log"}})
	assert.Error(t, err)
}

func TestNoOpLogger_WithReturnsSelf(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	assert.Same(t, nop, nop.With(logger.Int("port", 3000)))
	assert.NoError(t, nop.Sync())
}
