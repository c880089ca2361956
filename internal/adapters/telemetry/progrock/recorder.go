// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// Recorder implements ports.Telemetry on a progrock tape.
// Vertices are keyed by the digest of their name, so a package recorded twice
// shares one vertex and inputs can refer to it by name.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// VertexDigest returns the digest identifying the vertex named name.
func VertexDigest(name string) digest.Digest {
	return digest.FromString(name)
}

// Record starts recording a new vertex. Inputs given with ports.WithInputs become vertex edges.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := ports.ApplyVertexOptions(opts...)

	var vopts []progrock.VertexOpt
	if len(cfg.Inputs) > 0 {
		inputs := make([]digest.Digest, 0, len(cfg.Inputs))
		for _, in := range cfg.Inputs {
			inputs = append(inputs, VertexDigest(in))
		}
		vopts = append(vopts, progrock.WithInputs(inputs...))
	}

	v := r.rec.Vertex(VertexDigest(name), name, vopts...)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
