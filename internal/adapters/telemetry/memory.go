package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// VertexRecord is the captured state of one vertex.
type VertexRecord struct {
	Name   string
	Inputs []string
	Status domain.VertexStatus
	Err    error
	Output string
}

// Memory is a ports.Telemetry that keeps every vertex in memory.
// It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	vertices []*memoryVertex
}

// NewMemory creates an empty Memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record starts a vertex in the running state.
func (m *Memory) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := ports.ApplyVertexOptions(opts...)
	v := &memoryVertex{
		name:   name,
		inputs: slices.Clone(cfg.Inputs),
		status: domain.VertexStatusRunning,
	}
	m.mu.Lock()
	m.vertices = append(m.vertices, v)
	m.mu.Unlock()
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

// Vertices returns a snapshot of every recorded vertex in start order.
func (m *Memory) Vertices() []VertexRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]VertexRecord, 0, len(m.vertices))
	for _, v := range m.vertices {
		out = append(out, v.snapshot())
	}
	return out
}

// Find returns the first vertex named name.
func (m *Memory) Find(name string) (VertexRecord, bool) {
	for _, v := range m.Vertices() {
		if v.Name == name {
			return v, true
		}
	}
	return VertexRecord{}, false
}

type memoryVertex struct {
	mu     sync.Mutex
	name   string
	inputs []string
	status domain.VertexStatus
	err    error
	out    bytes.Buffer
}

type lockedWriter struct{ v *memoryVertex }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.v.mu.Lock()
	defer w.v.mu.Unlock()
	return w.v.out.Write(p)
}

func (v *memoryVertex) Stdout() io.Writer { return lockedWriter{v} }
func (v *memoryVertex) Stderr() io.Writer { return lockedWriter{v} }

func (v *memoryVertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(lockedWriter{v}, "[%s] %s\n", level, msg)
}

func (v *memoryVertex) Complete(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status.IsTerminal() {
		return
	}
	v.err = err
	if err != nil {
		v.status = domain.VertexStatusFailed
	} else {
		v.status = domain.VertexStatusCompleted
	}
}

func (v *memoryVertex) Cached() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = domain.VertexStatusCached
}

func (v *memoryVertex) snapshot() VertexRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return VertexRecord{
		Name:   v.name,
		Inputs: slices.Clone(v.inputs),
		Status: v.status,
		Err:    v.err,
		Output: v.out.String(),
	}
}
