// ABOUTME: Structured logger setup backed by a rotating log file.
// ABOUTME: Debug mode mirrors log output to stderr with caller info.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Dir is where fitness.log is written. Empty disables the file.
	Dir string
	// Level is a charm log level name; empty means warn.
	Level string
	// Debug forces debug level and mirrors output to Stderr.
	Debug bool
	// Stderr receives debug output; defaults to os.Stderr.
	Stderr io.Writer
}

// Logger wraps a charm logger with the file it writes to.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to <Dir>/logs/fitness.log.
func New(opts Options) (*Logger, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var writers []io.Writer
	var file *lumberjack.Logger
	if opts.Dir != "" {
		logDir := filepath.Join(opts.Dir, "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "fitness.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, file)
	}
	if opts.Debug {
		writers = append(writers, stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "fitness",
	})
	return &Logger{Logger: l, file: file}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
