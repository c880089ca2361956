package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgcore/internal/core/domain"
)

func TestVertexStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.VertexStatus
		isTerminal bool
	}{
		{"Running", domain.VertexStatusRunning, false},
		{"Completed", domain.VertexStatusCompleted, true},
		{"Failed", domain.VertexStatusFailed, true},
		{"Cached", domain.VertexStatusCached, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(99), "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, domain.ParseLogLevel("debug"))
	assert.Equal(t, domain.LogLevelWarn, domain.ParseLogLevel("WARN"))
	assert.Equal(t, domain.LogLevelWarn, domain.ParseLogLevel("warning"))
	assert.Equal(t, domain.LogLevelError, domain.ParseLogLevel(" error "))
	assert.Equal(t, domain.LogLevelInfo, domain.ParseLogLevel("info"))
	assert.Equal(t, domain.LogLevelInfo, domain.ParseLogLevel("verbose"))
}
