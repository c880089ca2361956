package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgcore/internal/adapters/logger"
	"go.trai.ch/pkgcore/internal/core/domain"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithLevel(&buf, domain.LogLevelInfo)

	lg.Info("resolved package", "name", "lodash", "version", "4.17.21")

	out := buf.String()
	assert.Contains(t, out, "resolved package")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "lodash")
	assert.Contains(t, out, "4.17.21")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithLevel(&buf, domain.LogLevelInfo)

	lg.Error(errors.New("permission denied"))

	assert.Contains(t, buf.String(), "permission denied")
	assert.Contains(t, buf.String(), "ERRO")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithLevel(&buf, domain.LogLevelInfo)

	lg.Warn("some warning")

	assert.Contains(t, buf.String(), "some warning")
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithLevel(&buf, domain.LogLevelInfo)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	debug := logger.NewWithLevel(&buf, domain.LogLevelDebug)
	debug.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithLevel(&first, domain.LogLevelInfo)

	lg.SetOutput(&second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}

func TestNew(t *testing.T) {
	assert.NotNil(t, logger.New())
	assert.NotPanics(t, func() {
		nop := logger.NewNop()
		nop.Info("ignored")
		nop.Error(errors.New("ignored"))
	})
}
