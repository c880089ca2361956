package wiring_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/app"
	_ "go.trai.ch/pkgcore/internal/wiring"
)

func TestExecuteFor_Components(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkgcore.yaml")
	content := fmt.Sprintf(`registry:
  url: https://registry.test
  metadata_dir: %s
cache:
  dir: %s
  warm_on_start: true
log:
  level: error
`, filepath.Join(dir, "metadata"), filepath.Join(dir, "packages"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ctx := config.WithPath(context.Background(), path)
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	t.Cleanup(func() { _ = components.App.Close() })

	stats, err := components.App.CacheStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.FilterWarm)
	assert.Zero(t, stats.DiskEntries)
	assert.DirExists(t, filepath.Join(dir, "metadata"))
}
