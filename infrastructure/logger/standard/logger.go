// ABOUTME: Standard logger implementation backed by logrus
// ABOUTME: Provides structured leveled logging with text/json output and optional rotated files

package standard

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string

	// Format is "json" or "text"
	Format string

	// File enables rotated file output when non-empty
	File string

	// Output overrides the destination; used by tests
	Output io.Writer
}

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	log *logrus.Logger
}

// NewStandardLogger creates a logger writing text at info level to stdout
func NewStandardLogger() *StandardLogger {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a logger from options
func NewWithOptions(opts Options) *StandardLogger {
	log := logrus.New()
	log.SetLevel(parseLevel(opts.Level))

	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch {
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	case opts.File != "":
		log.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	default:
		log.SetOutput(os.Stdout)
	}

	return &StandardLogger{log: log}
}

func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry(fields).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry(fields).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry(fields).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry(fields).Error(msg)
}

// Writer exposes the logger as an io.Writer at error level, for net/http's ErrorLog
func (l *StandardLogger) Writer() *io.PipeWriter {
	return l.log.WriterLevel(logrus.ErrorLevel)
}

func (l *StandardLogger) entry(fields map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return logrus.NewEntry(l.log)
	}
	return l.log.WithFields(logrus.Fields(fields))
}
