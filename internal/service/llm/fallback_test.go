package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger keeps the messages it receives so tests can assert on them.
type recordingLogger struct {
	entries []logEntry
}

type logEntry struct {
	level string
	msg   string
	kv    []interface{}
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.add("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.add("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.add("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.add("error", msg, kv) }

func (l *recordingLogger) add(level, msg string, kv []interface{}) {
	l.entries = append(l.entries, logEntry{level: level, msg: msg, kv: kv})
}

func (l *recordingLogger) attempts() []logEntry {
	var out []logEntry
	for _, e := range l.entries {
		if e.msg == "Provider attempt succeeded" || e.msg == "Provider attempt failed" {
			out = append(out, e)
		}
	}
	return out
}

func value(kv []interface{}, key string) interface{} {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == key {
			return kv[i+1]
		}
	}
	return nil
}

func TestFirstSuccessReturnsFirstSuccessfulAttempt(t *testing.T) {
	log := &recordingLogger{}
	var calls []string

	attempts := []Attempt[string]{
		{Name: "gemini", Run: func(context.Context) (string, error) {
			calls = append(calls, "gemini")
			return "", NewConfigError("gemini", "GEMINI_API_KEY")
		}},
		{Name: "openai", Run: func(context.Context) (string, error) {
			calls = append(calls, "openai")
			return "hello", nil
		}},
		{Name: "anthropic", Run: func(context.Context) (string, error) {
			calls = append(calls, "anthropic")
			return "never", nil
		}},
	}

	result, name, err := FirstSuccess(context.Background(), log, attempts)
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
	assert.Equal(t, "openai", name)
	assert.Equal(t, []string{"gemini", "openai"}, calls)

	logged := log.attempts()
	require.Len(t, logged, 2)
	assert.Equal(t, "warn", logged[0].level)
	assert.Equal(t, "not_configured", value(logged[0].kv, "reason"))
	assert.Equal(t, "info", logged[1].level)
	assert.Equal(t, "openai", value(logged[1].kv, "provider"))
}

func TestFirstSuccessAllFail(t *testing.T) {
	log := &recordingLogger{}
	httpErr := &HTTPError{Provider: "openai", StatusCode: 500, Body: "boom"}

	attempts := []Attempt[int]{
		{Name: "openai", Run: func(context.Context) (int, error) { return 0, httpErr }},
		{Name: "mistral", Run: func(context.Context) (int, error) {
			return 0, &ShapeError{Provider: "mistral"}
		}},
	}

	_, name, err := FirstSuccess(context.Background(), log, attempts)
	require.Error(t, err)
	assert.Empty(t, name)
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, ErrNoUsableText)

	var chainErr *ChainError
	require.ErrorAs(t, err, &chainErr)
	require.Len(t, chainErr.Attempts, 2)
	assert.Equal(t, "openai", chainErr.Attempts[0].Provider)

	var gotHTTP *HTTPError
	require.ErrorAs(t, err, &gotHTTP)
	assert.Equal(t, 500, gotHTTP.StatusCode)
	assert.Len(t, log.attempts(), 2)
}

func TestFirstSuccessNoAttempts(t *testing.T) {
	_, _, err := FirstSuccess[string](context.Background(), NopLogger(), nil)
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Contains(t, err.Error(), "no providers configured")
}

func TestFirstSuccessStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	called := false

	attempts := []Attempt[string]{
		{Name: "gemini", Run: func(context.Context) (string, error) {
			cancel()
			return "", context.Canceled
		}},
		{Name: "openai", Run: func(context.Context) (string, error) {
			called = true
			return "late", nil
		}},
	}

	_, _, err := FirstSuccess(ctx, NopLogger(), attempts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "not_configured", Reason(NewConfigError("openai", "OPENAI_API_KEY")))
	assert.Equal(t, "http_error", Reason(&HTTPError{Provider: "openai", StatusCode: 429}))
	assert.Equal(t, "bad_response", Reason(&ShapeError{Provider: "openai"}))
	assert.Equal(t, "cancelled", Reason(context.DeadlineExceeded))
	assert.Equal(t, "transport_error", Reason(errors.New("dial tcp: refused")))
}

func TestHTTPErrorTruncatesBody(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	err := &HTTPError{Provider: "openai", StatusCode: 400, Body: string(long)}
	assert.Less(t, len(err.Error()), 600)
	assert.Contains(t, err.Error(), "HTTP 400")
}
