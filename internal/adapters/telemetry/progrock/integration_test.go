package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/adapters/telemetry/progrock"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx, root := recorder.Record(context.Background(), "resolve lodash@^4.17.0")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, root, got)

	_, err := root.Stdout().Write([]byte("fetched metadata\n"))
	require.NoError(t, err)
	root.Log(domain.LogLevelDebug, "debug msg")
	root.Log(domain.LogLevelWarn, "warn msg")
	root.Complete(nil)

	_, child := recorder.Record(ctx, "fetch lodash@4.17.21", ports.WithInputs("resolve lodash@^4.17.0"))
	child.Cached()
	child.Complete(nil)

	_, failed := recorder.Record(ctx, "fetch missing@1.0.0")
	failed.Complete(errors.New("not found"))

	require.NoError(t, recorder.Close())
}

func TestVertexDigest(t *testing.T) {
	assert.Equal(t, progrock.VertexDigest("a"), progrock.VertexDigest("a"))
	assert.NotEqual(t, progrock.VertexDigest("a"), progrock.VertexDigest("b"))
	assert.Equal(t, "sha256", progrock.VertexDigest("a").Algorithm().String())
}
