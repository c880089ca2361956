package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/adapters/logger"
	"go.trai.ch/pkgcore/internal/adapters/security"
	"go.trai.ch/pkgcore/internal/adapters/telemetry"
	"go.trai.ch/pkgcore/internal/app"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/pkgcore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type harness struct {
	resolver *mocks.MockResolver
	fetcher  *mocks.MockFetcher
	cache    *mocks.MockCache
	auditors *mocks.MockAuditorFactory
	tel      *mocks.MockTelemetry
	app      *app.App
}

func newHarness(t *testing.T, cfg domain.Config) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		resolver: mocks.NewMockResolver(ctrl),
		fetcher:  mocks.NewMockFetcher(ctrl),
		cache:    mocks.NewMockCache(ctrl),
		auditors: mocks.NewMockAuditorFactory(ctrl),
		tel:      mocks.NewMockTelemetry(ctrl),
	}
	h.app = app.New(cfg, h.resolver, h.fetcher, h.cache, h.auditors, h.tel, logger.NewNop())
	return h
}

func singlePackageGraph(t *testing.T, pkg domain.ResolvedPackage) *domain.ResolvedGraph {
	t.Helper()
	g, err := domain.NewResolvedGraph(domain.ConflictError)
	require.NoError(t, err)
	require.NoError(t, g.Add(pkg))
	return g
}

var lodash = domain.ResolvedPackage{
	Name:         "lodash",
	Version:      "4.17.21",
	TarballURL:   "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz",
	Dependencies: map[string]string{},
}

func TestApp_Resolve(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())
	graph := singlePackageGraph(t, lodash)
	deps := map[string]string{"lodash": "^4.17.0"}

	h.resolver.EXPECT().Resolve(gomock.Any(), deps).Return(graph, nil)

	got, err := h.app.Resolve(context.Background(), deps)
	require.NoError(t, err)
	assert.Same(t, graph, got)
}

func TestApp_Resolve_NoDependencies(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())

	_, err := h.app.Resolve(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNoDependencies)
}

func TestApp_Resolve_Failure(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())
	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewPackageError(domain.ErrPackageNotFound, "nope", nil))

	_, err := h.app.Resolve(context.Background(), map[string]string{"nope": "1.0.0"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "resolution failed")
	assert.ErrorContains(t, err, "nope")
}

func TestApp_Install(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Registry.URL = "https://mirror.example:8443/npm"
	cfg.Security.ExtraHosts = []string{"cdn.example"}
	h := newHarness(t, cfg)

	dest := filepath.Join(t.TempDir(), "node_modules")
	graph := singlePackageGraph(t, lodash)
	pins := domain.Pins{lodash.Key(): 42}
	report := &domain.FetchReport{Packages: 1, Downloaded: 1}

	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(graph, nil)
	h.auditors.EXPECT().ForCapabilities(gomock.Any()).DoAndReturn(func(caps domain.Capabilities) ports.Auditor {
		assert.True(t, caps.CanWrite(filepath.Join(dest, "lodash")))
		assert.True(t, caps.CanAccessNetwork("mirror.example"))
		assert.True(t, caps.CanAccessNetwork("cdn.example"))
		assert.True(t, caps.CanAccessNetwork(domain.DefaultRegistryHost))
		assert.False(t, caps.AllowScripts())
		return security.NewAuditor(caps)
	})
	h.fetcher.EXPECT().Fetch(gomock.Any(), graph, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.ResolvedGraph, opts ports.FetchOptions) (*domain.FetchReport, error) {
			assert.Equal(t, dest, opts.Dest)
			assert.Equal(t, pins, opts.Pins)
			assert.NotNil(t, opts.Auditor)
			return report, nil
		})

	res, err := h.app.Install(context.Background(), map[string]string{"lodash": "^4"}, app.InstallOptions{Dest: dest, Pins: pins})
	require.NoError(t, err)
	assert.Same(t, graph, res.Graph)
	assert.Same(t, report, res.Report)
}

func TestApp_Install_PartialFailure(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())
	graph := singlePackageGraph(t, lodash)
	report := &domain.FetchReport{Packages: 1, Failed: 1}

	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(graph, nil)
	h.auditors.EXPECT().ForCapabilities(gomock.Any()).Return(mocks.NewMockAuditor(gomock.NewController(t)))
	h.fetcher.EXPECT().Fetch(gomock.Any(), graph, gomock.Any()).Return(report, errors.New("lodash@4.17.21: boom"))

	res, err := h.app.Install(context.Background(), map[string]string{"lodash": "^4"}, app.InstallOptions{Dest: t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetch failed")
	require.NotNil(t, res)
	assert.Same(t, report, res.Report)
}

func TestApp_Audit(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())

	scripted := domain.ResolvedPackage{
		Name:             "esbuild",
		Version:          "0.19.0",
		TarballURL:       "https://evil.example/esbuild.tgz",
		HasInstallScript: true,
		Dependencies:     map[string]string{},
	}
	g, err := domain.NewResolvedGraph(domain.ConflictError)
	require.NoError(t, err)
	require.NoError(t, g.Add(lodash))
	require.NoError(t, g.Add(scripted))

	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(g, nil)
	h.auditors.EXPECT().ForCapabilities(gomock.Any()).DoAndReturn(func(caps domain.Capabilities) ports.Auditor {
		return security.NewAuditor(caps)
	})

	audits, err := h.app.Audit(context.Background(), map[string]string{"lodash": "^4", "esbuild": "0.19.0"}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, audits, 2)

	assert.True(t, audits[0].Result.Passed)
	assert.False(t, audits[0].Result.Blocked())

	assert.True(t, audits[1].Result.HasCategory(domain.CategorySuspiciousScript))
	assert.True(t, audits[1].Result.HasCategory(domain.CategoryUnauthorizedNetwork))
	assert.True(t, audits[1].Result.Blocked())
}

func TestApp_Cache(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())
	ctx := context.Background()

	h.cache.EXPECT().Stats(gomock.Any()).Return(domain.CacheStats{DiskEntries: 3}, nil)
	stats, err := h.app.CacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.DiskEntries)

	h.cache.EXPECT().Clean(gomock.Any(), 30).Return(2, nil)
	removed, err := h.app.CacheClean(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = h.app.CacheClean(ctx, -1)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestApp_Close(t *testing.T) {
	h := newHarness(t, domain.DefaultConfig())
	h.tel.EXPECT().Close().Return(nil)
	require.NoError(t, h.app.Close())
}

func TestComponents_FromMemoryTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(domain.DefaultConfig(), mocks.NewMockResolver(ctrl), mocks.NewMockFetcher(ctrl),
		mocks.NewMockCache(ctrl), security.NewFactory(), telemetry.NewMemory(), logger.NewNop())
	c := &app.Components{App: a, Logger: logger.NewNop()}
	require.NotNil(t, c.App)
	require.NoError(t, c.App.Close())
}
