// Package logging writes forge's operational log to a rotating file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger.
type Options struct {
	File    string    // log file path; empty disables the file sink
	Verbose bool      // mirror every line to Stderr
	Stderr  io.Writer // defaults to os.Stderr
}

// Logger is a workspace logger. A nil *Logger discards everything.
type Logger struct {
	logger *log.Logger
	file   *lumberjack.Logger
}

// New builds a logger that rotates File at 10 MB, keeping 3 backups for 28 days.
func New(opts Options) (*Logger, error) {
	var writers []io.Writer
	var file *lumberjack.Logger

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, file)
	}
	if opts.Verbose {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	return &Logger{logger: log.New(out, "", log.LstdFlags), file: file}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0)}
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Logf logs a formatted message.
func (l *Logger) Logf(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.logger.Printf(format, v...)
}

// LogOperation logs a user-visible operation and its details.
func (l *Logger) LogOperation(operation, details string) {
	l.Logf("Operation: %s, Details: %s", operation, details)
}

// LogError logs an error.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	l.Logf("Error: %s", err)
}
