// Package logging provides the structured logging abstraction used by the ledger
// components. Components depend on the Logger interface only; the logrus-backed
// adapter is wired in by the container.
package logging

// Logger defines the structured logging contract used across the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// NewNopLogger returns a Logger that discards everything. Useful as a default
// when a caller passes a nil logger.
func NewNopLogger() Logger {
	return NewLogrusAdapterWithOutput("panic", "text", discard{})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
