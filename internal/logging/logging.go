package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sitelens/sitelens/internal/interfaces"
)

// Logger and Field alias the shared contracts so most callers only need
// this one import.
type (
	Logger = interfaces.Logger
	Field  = interfaces.Field
)

// Level orders log severities for filtering.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// StdoutLogger is a tiny, structured logger. It implements interfaces.Logger
// and prints JSON lines to an io.Writer (stdout by default).
type StdoutLogger struct {
	component string
	min       Level
	out       io.Writer
}

// NewStdoutLogger creates a new StdoutLogger at Info level. component is
// optional and will be carried on child loggers created with With().
func NewStdoutLogger(component string) *StdoutLogger {
	return &StdoutLogger{component: component, min: LevelInfo, out: os.Stdout}
}

// NewLogger creates a StdoutLogger with an explicit minimum level and writer.
// Pass nil for w to write to stdout.
func NewLogger(component string, min Level, w io.Writer) *StdoutLogger {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutLogger{component: component, min: min, out: w}
}

func (s *StdoutLogger) log(level Level, name string, msg string, fields ...interfaces.Field) {
	if level < s.min {
		return
	}
	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any)
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     name,
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback plain formatting if the fields refuse to marshal
		fmt.Fprintf(s.out, "%s %s %v\n", name, msg, m)
		return
	}
	fmt.Fprintln(s.out, string(enc))
}

func (s *StdoutLogger) Debug(msg string, fields ...interfaces.Field) {
	s.log(LevelDebug, "debug", msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...interfaces.Field) {
	s.log(LevelInfo, "info", msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...interfaces.Field) {
	s.log(LevelWarn, "warn", msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...interfaces.Field) {
	s.log(LevelError, "error", msg, fields...)
}

func (s *StdoutLogger) With(fields ...interfaces.Field) interfaces.Logger {
	child := &StdoutLogger{component: s.component, min: s.min, out: s.out}
	// A component field renames the child; other fields are kept by callers
	// passing them again, which is all the current call sites need.
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
			}
		}
	}
	return child
}

// NopLogger discards everything. Handy default for tests and library callers
// that did not supply a logger.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(string, ...interfaces.Field)      {}
func (NopLogger) Info(string, ...interfaces.Field)       {}
func (NopLogger) Warn(string, ...interfaces.Field)       {}
func (NopLogger) Error(string, ...interfaces.Field)      {}
func (n NopLogger) With(...interfaces.Field) interfaces.Logger { return n }
