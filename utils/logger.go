package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger wraps standard log with level-based output, optionally teeing
// everything to a log file alongside the terminal
type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	error   *log.Logger
	debug   *log.Logger
	logFile *os.File
}

// NewLogger creates a logger writing to stdout/stderr only
func NewLogger() *Logger {
	return newLogger(nil)
}

// NewFileLogger creates a logger that also appends to the given file
func NewFileLogger(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(file), nil
}

func newLogger(file *os.File) *Logger {
	out := io.Writer(os.Stdout)
	errOut := io.Writer(os.Stderr)
	if file != nil {
		out = io.MultiWriter(os.Stdout, file)
		errOut = io.MultiWriter(os.Stderr, file)
	}

	flags := log.Lmsgprefix
	return &Logger{
		info:    log.New(out, "[INFO]  ", flags),
		warn:    log.New(out, "[WARN]  ", flags),
		error:   log.New(errOut, "[ERROR] ", flags),
		debug:   log.New(out, "[DEBUG] ", flags),
		logFile: file,
	}
}

// Close releases the log file, if any
func (l *Logger) Close() {
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
}

func (l *Logger) prefix() string {
	return fmt.Sprintf(" %s ", time.Now().Format("15:04:05"))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.info.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.warn.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.error.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.debug.Printf(l.prefix()+msg, args...)
}
