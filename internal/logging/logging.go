// Package logging provides structured logging for the analysis service.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level represents the severity of a log message
type Level int

const (
	// DebugLevel for debug messages
	DebugLevel Level = iota
	// InfoLevel for informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
)

// String returns the lowercase name of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level, defaulting to info
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Format represents the output format for logs
type Format string

const (
	// JSONFormat outputs logs as JSON
	JSONFormat Format = "json"
	// HumanFormat outputs logs in human-readable format
	HumanFormat Format = "human"
)

// Config holds logger configuration
type Config struct {
	Format Format
	Level  Level
	Output io.Writer // Optional, defaults to stderr
}

// Logger provides structured logging
type Logger struct {
	config    Config
	writer    io.Writer
	component string
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	writer := config.Output
	if writer == nil {
		writer = os.Stderr
	}

	return &Logger{
		config: config,
		writer: writer,
	}
}

// Named returns a logger that tags every entry with a component name
func (l *Logger) Named(component string) *Logger {
	child := *l
	child.component = component
	return &child
}

// entry is a single log line
type entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func (l *Logger) log(level Level, message string, fields map[string]interface{}) {
	if level < l.config.Level {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Component: l.component,
		Message:   message,
		Fields:    fields,
	}

	if l.config.Format == JSONFormat {
		l.writeJSON(e)
	} else {
		l.writeHuman(e)
	}
}

func (l *Logger) writeJSON(e entry) {
	data, err := json.Marshal(e)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to marshal log entry: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(l.writer, string(data))
}

func (l *Logger) writeHuman(e entry) {
	_, _ = fmt.Fprintf(l.writer, "%s [%s]", e.Timestamp, e.Level)
	if e.Component != "" {
		_, _ = fmt.Fprintf(l.writer, " (%s)", e.Component)
	}
	_, _ = fmt.Fprintf(l.writer, " %s", e.Message)

	if len(e.Fields) > 0 {
		_, _ = fmt.Fprintf(l.writer, " | ")
		first := true
		for k, v := range e.Fields {
			if !first {
				_, _ = fmt.Fprintf(l.writer, ", ")
			}
			_, _ = fmt.Fprintf(l.writer, "%s=%v", k, v)
			first = false
		}
	}
	_, _ = fmt.Fprintln(l.writer)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields map[string]interface{}) {
	l.log(DebugLevel, message, fields)
}

// Info logs an info message
func (l *Logger) Info(message string, fields map[string]interface{}) {
	l.log(InfoLevel, message, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields map[string]interface{}) {
	l.log(WarnLevel, message, fields)
}

// Error logs an error message
func (l *Logger) Error(message string, fields map[string]interface{}) {
	l.log(ErrorLevel, message, fields)
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return New(Config{Level: ErrorLevel + 1, Output: io.Discard})
}
