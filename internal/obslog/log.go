// Package obslog is a small leveled logger over the standard library's log
// package, selected by the LOG_LEVEL environment variable. Its *Fields
// methods attach structured key/value pairs to a line — used by the memory
// governor to carry RSS/row-count readings alongside the human-readable
// message instead of interpolating them into the format string.
package obslog

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// Field is a structured key/value pair attached to a log line, e.g. the
// memory governor's RSS reading or the profiler's running row count.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for use with the *Fields logging methods.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger provides leveled logging
type Logger struct {
	level LogLevel
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	level := LogLevelInfo // default
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		switch levelStr {
		case "ERROR":
			level = LogLevelError
		case "WARN":
			level = LogLevelWarn
		case "INFO":
			level = LogLevelInfo
		case "DEBUG":
			level = LogLevelDebug
		case "TRACE":
			level = LogLevelTrace
		}
	}
	return &Logger{level: level}
}

func appendFields(msg string, fields []Field) string {
	if len(fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		fmt.Fprintf(&b, "%v", f.Value)
	}
	return b.String()
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// ErrorFields logs an error message with structured fields appended as
// key=value pairs, e.g. the memory governor's RSS/availability reading.
func (l *Logger) ErrorFields(msg string, fields ...Field) {
	if l.level >= LogLevelError {
		log.Print("[ERROR] " + appendFields(msg, fields))
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// WarnFields logs a warning message with structured fields appended as
// key=value pairs, e.g. the memory governor's utilization percentage.
func (l *Logger) WarnFields(msg string, fields ...Field) {
	if l.level >= LogLevelWarn {
		log.Print("[WARN] " + appendFields(msg, fields))
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// InfoFields logs an info message with structured fields appended as
// key=value pairs, e.g. the profiler's running row count at completion.
func (l *Logger) InfoFields(msg string, fields ...Field) {
	if l.level >= LogLevelInfo {
		log.Print("[INFO] " + appendFields(msg, fields))
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LogLevelTrace {
		log.Printf("[TRACE] "+format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
