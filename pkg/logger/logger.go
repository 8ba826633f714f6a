// Package logger is the trace sink shared by every stage of a generator run.
//
// Components never reach for a global logger: each one receives a Logger at
// construction time, so verbosity is a value passed around rather than
// process-wide state.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
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
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	Enabled(level Level) bool
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// sink is shared between a logger and the children created by WithFields so
// that concurrent writers never interleave a line.
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

type standardLogger struct {
	level  Level
	sink   *sink
	fields []Field
}

// New creates a logger with the specified level and output.
// A nil writer falls back to stdout.
func New(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stdout
	}
	return &standardLogger{
		level: level,
		sink:  &sink{out: out},
	}
}

// ForVerbosity returns a Debug logger when verbose is set and an Info logger
// otherwise. Generator stages trace at Debug, so a non-verbose run stays quiet.
func ForVerbosity(verbose bool, out io.Writer) Logger {
	if verbose {
		return New(LevelDebug, out)
	}
	return New(LevelInfo, out)
}

// NewSilent creates a logger that outputs nothing
func NewSilent() Logger {
	return New(LevelSilent, io.Discard)
}

func (l *standardLogger) Enabled(level Level) bool {
	return level >= l.level && l.level != LevelSilent
}

// WithFields returns a new logger with additional fields
func (l *standardLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &standardLogger{
		level:  l.level,
		sink:   l.sink,
		fields: merged,
	}
}

func (l *standardLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

func (l *standardLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

func (l *standardLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

func (l *standardLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *standardLogger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)

	if len(l.fields) > 0 || len(fields) > 0 {
		b.WriteString(" |")
		for _, field := range l.fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
		for _, field := range fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, b.String())
}
