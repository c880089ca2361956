// Package logger implements a logging adapter using log/slog with a charmbracelet/log handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	level  domain.LogLevel
	logger *slog.Logger
}

// New creates a Logger writing info and above to stderr.
func New() ports.Logger {
	return NewWithLevel(os.Stderr, domain.LogLevelInfo)
}

// NewWithLevel creates a Logger writing to w at the given level.
func NewWithLevel(w io.Writer, level domain.LogLevel) *Logger {
	return &Logger{
		level:  level,
		logger: slog.New(newHandler(w, level)),
	}
}

func newHandler(w io.Writer, level domain.LogLevel) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           log.Level(level),
		Prefix:          "pkgcore",
	})
}

// SetOutput redirects the logger to w, keeping the level.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(w, l.level))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}

// Nop discards every message.
type Nop struct{}

// NewNop returns a logger for library callers that do not want output.
func NewNop() ports.Logger { return Nop{} }

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(error)          {}
