// ABOUTME: Structured logger implementation backed by sirupsen/logrus
// ABOUTME: Supports JSON or text output, level filtering and optional rotating log files

package logrus

import (
	"io"
	"os"
	"strings"

	sirupsen "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn or error
	Level string

	// Format is json or text
	Format string

	// File, when set, receives logs through a rotating writer instead of Output
	File string

	// Output defaults to stdout
	Output io.Writer
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *sirupsen.Logger
}

// New creates a logrus-backed logger
func New(opts Options) *Logger {
	l := sirupsen.New()

	level, err := sirupsen.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = sirupsen.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "text") {
		l.SetFormatter(&sirupsen.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&sirupsen.JSONFormatter{})
	}

	switch {
	case opts.File != "":
		l.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	default:
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(sirupsen.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(sirupsen.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(sirupsen.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(sirupsen.Fields(fields)).Error(msg)
}

// Level returns the active level name
func (l *Logger) Level() string {
	return l.entry.GetLevel().String()
}
