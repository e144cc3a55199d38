// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     logging
// Description: Structured logger on log/slog, fanned out with slog-multi
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	glerrors "github.com/msto63/glottony/pkg/core/errors"
)

// Fields holds structured context for a log entry
type Fields map[string]interface{}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Name of the component, logged as "logger"
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "text" (default: text)
	Format string

	// Primary output (default: os.Stderr)
	Output io.Writer

	// Additional outputs, always written as JSON
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
		Output:      os.Stderr,
	}
}

// Logger is a named structured logger
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
	name  string
}

// NewLogger creates a logger writing to the configured outputs
func NewLogger(cfg LoggerConfig) *Logger {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level))
	opts := &slog.HandlerOptions{Level: level}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var primary slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		primary = slog.NewJSONHandler(output, opts)
	} else {
		primary = slog.NewTextHandler(output, opts)
	}

	handlers := []slog.Handler{primary}
	for _, w := range cfg.AdditionalOutputs {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	if cfg.ServiceName != "" {
		logger = logger.With("logger", cfg.ServiceName)
	}

	return &Logger{slog: logger, level: level, name: cfg.ServiceName}
}

// New creates a logger with default configuration
func New(name string) *Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	cfg := DefaultLoggerConfig("")
	cfg.Output = io.Discard
	cfg.Level = "error"
	return NewLogger(cfg)
}

// ParseLevel converts a level name to a slog level; unknown names map to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// SetLevel changes the minimum level for this logger and its derivatives
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level slog.Level) bool {
	return l.slog.Enabled(context.Background(), level)
}

// WithField returns a logger that adds key=value to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{slog: l.slog.With(key, value), level: l.level, name: l.name}
}

// WithFields returns a logger that adds all fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	if len(fields) == 0 {
		return l
	}
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{slog: l.slog.With(args...), level: l.level, name: l.name}
}

// WithRequestID returns a logger tagged with a request (run) id
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

// Slog exposes the underlying slog logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.slog.Debug(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.slog.Info(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.slog.Warn(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.slog.Error(msg, keysAndValues...)
}

// LogError logs err at a level derived from its severity. Coded errors
// contribute their code and severity as fields.
func (l *Logger) LogError(msg string, err error, keysAndValues ...interface{}) {
	if err == nil {
		return
	}

	args := append([]interface{}{"error", err.Error()}, keysAndValues...)
	var coded glerrors.Coded
	if glerrors.As(err, &coded) {
		args = append(args, "error_code", string(coded.Code()), "error_severity", coded.Severity().String())
	}

	level := slog.LevelError
	switch glerrors.SeverityOf(err) {
	case glerrors.SeverityLow:
		level = slog.LevelInfo
	case glerrors.SeverityMedium:
		level = slog.LevelWarn
	}
	l.slog.Log(context.Background(), level, msg, args...)
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

var defaultLogger = New("glottony")

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
