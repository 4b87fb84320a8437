// Package logging provides leveled, fielded logging for MoodTracker.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) color() string {
	switch l {
	case DEBUG:
		return "\033[36m"
	case INFO:
		return "\033[32m"
	case WARN:
		return "\033[33m"
	case ERROR:
		return "\033[31m"
	default:
		return "\033[0m"
	}
}

// ParseLevel maps a config string to a level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes leveled messages with attached fields
type Logger struct {
	level  Level
	output io.Writer
	fields map[string]interface{}
	mu     sync.Mutex
}

var defaultLogger = &Logger{
	level:  INFO,
	output: os.Stdout,
	fields: map[string]interface{}{},
}

// SetLevel sets the global log level
func SetLevel(level Level) {
	defaultLogger.level = level
}

// SetOutput sets the global output writer
func SetOutput(w io.Writer) {
	defaultLogger.output = w
}

// WithField returns a logger carrying one extra field
func WithField(key string, value interface{}) *Logger {
	return defaultLogger.WithField(key, value)
}

// WithFields returns a logger carrying several extra fields
func WithFields(fields map[string]interface{}) *Logger {
	return defaultLogger.WithFields(fields)
}

// WithField returns a copy of the logger with one field added
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a copy of the logger with fields added
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{level: l.level, output: l.output, fields: merged}
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	formatted := msg
	if len(args) > 0 {
		formatted = fmt.Sprintf(msg, args...)
	}

	// Sorted field order keeps output stable across runs
	var fieldsStr string
	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		fieldsStr = " | " + strings.Join(parts, " ")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "%s %s[%s]\033[0m %s%s\n",
		time.Now().Format("15:04:05"), level.color(), level, formatted, fieldsStr)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) { defaultLogger.log(DEBUG, msg, args...) }

// Info logs an info message
func Info(msg string, args ...interface{}) { defaultLogger.log(INFO, msg, args...) }

// Warn logs a warning message
func Warn(msg string, args ...interface{}) { defaultLogger.log(WARN, msg, args...) }

// Error logs an error message
func Error(msg string, args ...interface{}) { defaultLogger.log(ERROR, msg, args...) }

// Logger methods
func (l *Logger) Debug(msg string, args ...interface{}) { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log(ERROR, msg, args...) }
