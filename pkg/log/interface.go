// Package log provides the structured logging interface used by the
// estimators in this module.
//
// The Logger interface is slog-compatible and backend-agnostic. The default
// backend is zerolog (see NewZerologLogger); SetupLogger configures a
// log/slog JSON handler instead, and TestLogger captures records for tests.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "LogisticRegression",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Info("fit started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with key-value fields.
//
// Error treats a leading error argument specially: implementations record
// it under the "error" key together with any stack trace it carries.
type Logger interface {
	// Debug logs per-iteration and other diagnostic detail.
	Debug(msg string, fields ...any)

	// Info logs lifecycle events such as the start and end of a fit.
	Info(msg string, fields ...any)

	// Warn logs recoverable problems, e.g. a fit that did not converge.
	Warn(msg string, fields ...any)

	// Error logs failures. The first field may be an error value.
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level; values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. It lets commands inject a configured
// backend into library code.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
