package interfaces

// Logger is the minimal structured-logging contract the rest of the module
// programs against; implementations live in internal/logging or in tests.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger that stamps fields on every message.
	With(fields ...Field) Logger
}

// Field is one key/value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}
