package domain

import "strings"

// VertexStatus is the lifecycle state of a recorded unit of work (resolving or fetching one package).
type VertexStatus string

const (
	// VertexStatusRunning indicates the work is in progress.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted indicates the work finished successfully.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed indicates the work finished with an error.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached indicates the result was served from the cache.
	VertexStatusCached VertexStatus = "cached"
)

// IsTerminal reports whether the status is final.
func (s VertexStatus) IsTerminal() bool {
	switch s {
	case VertexStatusCompleted, VertexStatusFailed, VertexStatusCached:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the upper-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel maps a config level name to a LogLevel. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
