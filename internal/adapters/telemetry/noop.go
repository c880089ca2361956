// Package telemetry provides in-process implementations of ports.Telemetry.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a Noop recorder.
func NewNoop() ports.Telemetry {
	return Noop{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer           { return io.Discard }
func (noopVertex) Stderr() io.Writer           { return io.Discard }
func (noopVertex) Log(domain.LogLevel, string) {}
func (noopVertex) Complete(error)              {}
func (noopVertex) Cached()                     {}
