package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_WithConversation(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogLoggerWithOutput(LogLevelDebug, "text", &buf)

	logger := NewConsoleLogger(base)
	logger.Info("plain entry")
	assert.NotContains(t, buf.String(), "conversation_id")

	buf.Reset()
	logger = logger.WithConversation("conv-1")
	logger.Info("scoped entry", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "scoped entry")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "conversation_id=conv-1")
}

func TestConsoleLogger_LogAsk(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsoleLogger(NewSlogLoggerWithOutput(LogLevelDebug, "text", &buf))

		logger.LogAsk("ping", 42*time.Millisecond, nil)

		out := buf.String()
		assert.Contains(t, out, "Ask completed")
		assert.Contains(t, out, "question=ping")
		assert.Contains(t, out, "duration=42ms")
	})

	t.Run("failure", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsoleLogger(NewSlogLoggerWithOutput(LogLevelDebug, "text", &buf))

		logger.LogAsk("ping", time.Second, errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "Ask failed")
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "error=boom")
	})
}

func TestNewConsoleLogger_NilBase(t *testing.T) {
	logger := NewConsoleLogger(nil)
	assert.NotPanics(t, func() {
		logger.WithConversation("conv-1").LogAsk("ping", time.Millisecond, nil)
	})
}
