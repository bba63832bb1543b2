package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Robbepop/enum-newtype/internal/logger"
)

func TestDefaultIsNop(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Infow("discarded", "file", "lib.rs")
	})
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core))
	defer logger.Set(nil)

	logger.Debugw("expanded", "enum", "Op", "variants", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "expanded", entries[0].Message)
	assert.Equal(t, map[string]any{"enum": "Op", "variants": int64(3)}, entries[0].ContextMap())
}

func TestInitialize(t *testing.T) {
	defer logger.Set(nil)
	require.NoError(t, logger.Initialize(false, true))
	assert.True(t, logger.Logger.Desugar().Core().Enabled(zap.DebugLevel))

	require.NoError(t, logger.Initialize(true, false))
	assert.False(t, logger.Logger.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Set(zap.New(core))
	defer logger.Set(nil)

	logger.Infow("dropped")
	logger.Warnw("watcher error")
	logger.Errorw("expansion failed", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
