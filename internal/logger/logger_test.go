package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("request_id", "abc")

	log.Info("provider attempt succeeded", "provider", "openai", "attempt", 2)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "provider attempt succeeded", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, "openai", fields["provider"])
	assert.EqualValues(t, 2, fields["attempt"])
}

func TestNew(t *testing.T) {
	log, err := New("debug", false)
	require.NoError(t, err)
	log.Debug("hello")
	NewNop().Error("discarded", "k", "v")
}
