// Package logging provides the leveled logger used by the iteration driver
// to report convergence/energy progress and by the analysis package for
// its verbose colouring histogram. Grounded on
// junjiewwang-perf-analysis/pkg/utils/logger.go, trimmed to what this
// repo's components actually call.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
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

// ParseLogLevel maps a config string to a LogLevel, defaulting to Info for
// anything unrecognised.
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the minimal leveled logging surface used across this repo.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// DefaultLogger writes leveled, field-annotated lines to an io.Writer.
type DefaultLogger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
	fields map[string]interface{}
}

// NewDefaultLogger returns a DefaultLogger writing to output at or above
// level.
func NewDefaultLogger(level LogLevel, output io.Writer) *DefaultLogger {
	return &DefaultLogger{level: level, output: output, fields: make(map[string]interface{})}
}

func (l *DefaultLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *DefaultLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *DefaultLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *DefaultLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

// WithField returns a copy of l carrying one additional field.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a copy of l carrying the given fields merged on top
// of its existing ones.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	next := &DefaultLogger{level: l.level, output: l.output, fields: make(map[string]interface{}, len(l.fields)+len(fields))}
	for k, v := range l.fields {
		next.fields[k] = v
	}
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

func (l *DefaultLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	formatted := fmt.Sprintf(msg, args...)

	fieldStr := ""
	for k, v := range l.fields {
		fieldStr += fmt.Sprintf(" %s=%v", k, v)
	}

	fmt.Fprintf(l.output, "[%s] [%s]%s %s\n", timestamp, level, fieldStr, formatted)
}

// NullLogger discards everything; useful for library callers that don't
// want driver/analysis diagnostics.
type NullLogger struct{}

func (NullLogger) Debug(string, ...interface{})           {}
func (NullLogger) Info(string, ...interface{})            {}
func (NullLogger) Warn(string, ...interface{})            {}
func (NullLogger) Error(string, ...interface{})           {}
func (l NullLogger) WithField(string, interface{}) Logger { return l }
func (l NullLogger) WithFields(map[string]interface{}) Logger { return l }
