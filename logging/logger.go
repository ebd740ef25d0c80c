// Package logging provides a tiny abstraction over slog so the rest of the
// code can depend on a minimal interface (Logger) while allowing users to
// plug any structured logger. A NoOpLogger is provided for tests and for
// callers that want a silent run.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger defines the minimal logging interface used throughout the module.
// Args follow the slog key/value convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewSlogLogger builds a Logger writing to stderr so log output never mixes
// with the console conversation on stdout. Format is "text" or "json".
func NewSlogLogger(level LogLevel, format string) Logger {
	return NewSlogLoggerWithOutput(level, format, os.Stderr)
}

// NewSlogLoggerWithOutput builds a Logger writing to the given destination.
func NewSlogLoggerWithOutput(level LogLevel, format string, output io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// ConsoleLogger decorates a Logger with conversation context and domain
// helpers for the ask path. It is cheap to copy via WithConversation.
type ConsoleLogger struct {
	base           Logger
	conversationID string
}

// NewConsoleLogger wraps a base Logger; a nil base logs nothing.
func NewConsoleLogger(base Logger) *ConsoleLogger {
	if base == nil {
		base = NoOpLogger{}
	}
	return &ConsoleLogger{base: base}
}

// WithConversation returns a copy that attaches the conversation identifier
// to every entry.
func (l *ConsoleLogger) WithConversation(conversationID string) *ConsoleLogger {
	return &ConsoleLogger{base: l.base, conversationID: conversationID}
}

func (l *ConsoleLogger) attrs(args []any) []any {
	if l.conversationID == "" {
		return args
	}
	return append(args, "conversation_id", l.conversationID)
}

// Debug logs a debug message with the conversation attached.
func (l *ConsoleLogger) Debug(msg string, args ...any) { l.base.Debug(msg, l.attrs(args)...) }

// Info logs an informational message with the conversation attached.
func (l *ConsoleLogger) Info(msg string, args ...any) { l.base.Info(msg, l.attrs(args)...) }

// Warn logs a warning message with the conversation attached.
func (l *ConsoleLogger) Warn(msg string, args ...any) { l.base.Warn(msg, l.attrs(args)...) }

// Error logs an error message with the conversation attached.
func (l *ConsoleLogger) Error(msg string, args ...any) { l.base.Error(msg, l.attrs(args)...) }

// LogAsk records one ask round trip: the question, its duration and the
// outcome.
func (l *ConsoleLogger) LogAsk(question string, dur time.Duration, err error) {
	args := []any{"question", question, "duration", dur}
	if err != nil {
		l.Error("Ask failed", append(args, "error", err)...)
		return
	}
	l.Info("Ask completed", args...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is
// disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
