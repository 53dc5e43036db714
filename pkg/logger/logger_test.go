package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name  string
		env   logger.Environment
		level string
	}{
		{"development debug", logger.Development, "debug"},
		{"development warning alias", logger.Development, "warning"},
		{"development unknown level falls back", logger.Development, "invalid"},
		{"production empty level", logger.Production, ""},
		{"production error", logger.Production, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := logger.NewLogger(tc.env, tc.level)
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.NotPanics(t, func() {
				log.Debug(context.Background(), "debug message")
				log.Info(context.Background(), "info message")
			})
		})
	}
}

func TestNewWrapsZapLogger(t *testing.T) {
	log := logger.New(zap.NewNop())
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info(context.Background(), "wrapped") })

	assert.NotPanics(t, func() { logger.New(nil).Warn(context.Background(), "nop") })
}

func TestWithCreatesNewInstance(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "info")
	require.NoError(t, err)

	derived := log.With(zap.String("component", "test"))
	assert.NotSame(t, log, derived)
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("foreign value under another key", func(t *testing.T) {
		type otherKey struct{}
		ctx := context.WithValue(context.Background(), otherKey{}, "not a logger")

		_, err := logger.FromContext(ctx)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogResolutionOrder(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	contextLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	globalLogger, err := logger.NewLogger(logger.Production, "error")
	require.NoError(t, err)

	logger.SetGlobalLogger(nil)
	fallback := logger.Log(context.Background())
	require.NotNil(t, fallback)

	logger.SetGlobalLogger(globalLogger)
	assert.Same(t, globalLogger, logger.Log(context.Background()))

	ctx := logger.NewContext(context.Background(), contextLogger)
	assert.Same(t, contextLogger, logger.Log(ctx))
}

func TestInitGlobalLoggerKeepsExisting(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	existing, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	logger.SetGlobalLogger(existing)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	assert.Same(t, existing, logger.Log(context.Background()))

	logger.SetGlobalLogger(nil)
	require.NoError(t, logger.InitGlobalLogger(logger.Development))
	assert.NotSame(t, existing, logger.Log(context.Background()))
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), strings.Repeat("x", logger.MaxRequestIDLength+1))

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("absent id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}

func TestWithRequestID(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	assert.Same(t, log, log.WithRequestID(context.Background()))

	ctx := logger.NewRequestIDContext(context.Background(), "req-2")
	withID := log.WithRequestID(ctx)
	assert.NotSame(t, log, withID)
	assert.NotPanics(t, func() { withID.Info(ctx, "message with request id") })
}
