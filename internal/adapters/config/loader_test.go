package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	content := `
registry:
  url: https://npm.internal.example
  timeout: 5s
  concurrency: 8
cache:
  dir: /var/cache/pkgcore
  memory_entries: 50
resolver:
  conflict_policy: highest
fetch:
  retry_delay: 250ms
log:
  level: debug
`
	path := writeFile(t, t.TempDir(), "pkgcore.yaml", content)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://npm.internal.example", cfg.Registry.URL)
	assert.Equal(t, 5*time.Second, cfg.Registry.Timeout.Std())
	assert.Equal(t, 8, cfg.Registry.Concurrency)
	assert.Equal(t, "/var/cache/pkgcore", cfg.Cache.Dir)
	assert.Equal(t, 50, cfg.Cache.MemoryEntries)
	assert.Equal(t, domain.ConflictHighest, cfg.Resolver.ConflictPolicy)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.RetryDelay.Std())
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, uint(10_000), cfg.Cache.FilterCapacity)
	assert.Equal(t, 3, cfg.Fetch.Retries)
	assert.Equal(t, domain.DefaultMaxPackageSize, cfg.Security.MaxPackageSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pkgcore.yaml", "registry: [unterminated")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pkgcore.yaml", "resolver:\n  conflict_policy: newest\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoadManifest(t *testing.T) {
	content := `{
  "name": "app",
  "dependencies": {"lodash": "^4.17.0", "@types/node": "20.1.0"},
  "optionalDependencies": {"fsevents": "^2.3.0", "lodash": "^3.0.0"}
}`
	path := writeFile(t, t.TempDir(), "package.json", content)

	deps, err := config.LoadManifest(path, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lodash": "^4.17.0", "@types/node": "20.1.0"}, deps)

	withOptional, err := config.LoadManifest(path, true)
	require.NoError(t, err)
	assert.Equal(t, "^2.3.0", withOptional["fsevents"])
	assert.Equal(t, "^4.17.0", withOptional["lodash"], "regular dependency wins")
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.LoadManifest(filepath.Join(dir, "missing.json"), false)
	assert.ErrorContains(t, err, "failed to read package manifest")

	bad := writeFile(t, dir, "package.json", "{not json")
	_, err = config.LoadManifest(bad, false)
	assert.ErrorContains(t, err, "failed to read package manifest")
}

func TestPathFromContext(t *testing.T) {
	assert.Equal(t, config.DefaultFilename, config.PathFromContext(context.Background()))
	ctx := config.WithPath(context.Background(), "custom.yaml")
	assert.Equal(t, "custom.yaml", config.PathFromContext(ctx))
}
