package ports

import (
	"context"
	"io"

	"go.trai.ch/pkgcore/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records units of work as vertices.
type Telemetry interface {
	// Record starts a vertex and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	Stdout() io.Writer
	Stderr() io.Writer
	Log(level domain.LogLevel, msg string)
	// Complete ends the vertex, failed if err is non-nil.
	Complete(err error)
	// Cached marks the vertex as served from cache.
	Cached()
}

// VertexConfig holds the options of a vertex.
type VertexConfig struct {
	// Inputs names the vertices this one depends on.
	Inputs []string
}

// VertexOption configures a vertex.
type VertexOption func(*VertexConfig)

// WithInputs declares the vertices the new vertex depends on.
func WithInputs(names ...string) VertexOption {
	return func(c *VertexConfig) {
		c.Inputs = append(c.Inputs, names...)
	}
}

// ApplyVertexOptions folds opts into a VertexConfig.
func ApplyVertexOptions(opts ...VertexOption) VertexConfig {
	var cfg VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
