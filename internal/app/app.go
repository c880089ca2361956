// Package app implements the application layer for pkgcore.
package app

import (
	"context"
	"net/url"
	"path/filepath"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
)

// App coordinates resolution, fetching and cache maintenance.
type App struct {
	config    domain.Config
	resolver  ports.Resolver
	fetcher   ports.Fetcher
	cache     ports.Cache
	auditors  ports.AuditorFactory
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	cfg domain.Config,
	resolver ports.Resolver,
	fetcher ports.Fetcher,
	cache ports.Cache,
	auditors ports.AuditorFactory,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		config:    cfg,
		resolver:  resolver,
		fetcher:   fetcher,
		cache:     cache,
		auditors:  auditors,
		telemetry: telemetry,
		logger:    logger,
	}
}

// InstallOptions configures Install.
type InstallOptions struct {
	// Dest is the install root, typically node_modules.
	Dest string
	// Pins holds known content hashes by name@version.
	Pins domain.Pins
}

// InstallResult is the outcome of Install.
type InstallResult struct {
	Graph  *domain.ResolvedGraph
	Report *domain.FetchReport
}

// PackageAudit is the audit verdict of one resolved package.
type PackageAudit struct {
	Package domain.ResolvedPackage
	Result  domain.AuditResult
}

// Resolve resolves deps into a graph.
func (a *App) Resolve(ctx context.Context, deps map[string]string) (*domain.ResolvedGraph, error) {
	if len(deps) == 0 {
		return nil, domain.ErrNoDependencies
	}

	graph, err := a.resolver.Resolve(ctx, deps)
	if err != nil {
		return nil, zerr.Wrap(err, "resolution failed")
	}
	return graph, nil
}

// Install resolves deps and fetches every package for opts.Dest.
// On fetch failures the partial result is returned together with the error.
func (a *App) Install(ctx context.Context, deps map[string]string, opts InstallOptions) (*InstallResult, error) {
	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid install destination"), "dest", opts.Dest)
	}

	graph, err := a.Resolve(ctx, deps)
	if err != nil {
		return nil, err
	}

	auditor := a.auditors.ForCapabilities(a.config.InstallCapabilities(dest, a.registryHost()))
	report, err := a.fetcher.Fetch(ctx, graph, ports.FetchOptions{
		Dest:    dest,
		Auditor: auditor,
		Pins:    opts.Pins,
	})
	result := &InstallResult{Graph: graph, Report: report}
	if err != nil {
		return result, zerr.Wrap(err, "fetch failed")
	}
	return result, nil
}

// Audit resolves deps and audits every package against the install capabilities of dest
// without downloading anything.
func (a *App) Audit(ctx context.Context, deps map[string]string, dest string) ([]PackageAudit, error) {
	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid install destination"), "dest", dest)
	}

	graph, err := a.Resolve(ctx, deps)
	if err != nil {
		return nil, err
	}

	auditor := a.auditors.ForCapabilities(a.config.InstallCapabilities(root, a.registryHost()))
	pkgs := graph.Packages()
	audits := make([]PackageAudit, 0, len(pkgs))
	for _, pkg := range pkgs {
		result := auditor.AuditPackage(domain.PackageDest(root, pkg.Name), 0, 0).
			Merge(auditor.AuditScripts(pkg.Name, pkg.HasInstallScript))
		if err := auditor.CheckURL(pkg.TarballURL); err != nil {
			result = result.Merge(domain.NewAuditResult([]domain.SecurityIssue{{
				Severity:    domain.SeverityCritical,
				Category:    domain.CategoryUnauthorizedNetwork,
				Description: err.Error(),
			}}, 0))
		}
		if result.Blocked() {
			a.logger.Warn("package would be blocked", "package", pkg.Key(), "risk_score", result.RiskScore)
		}
		audits = append(audits, PackageAudit{Package: pkg, Result: result})
	}
	return audits, nil
}

// CacheStats returns cache occupancy and counters.
func (a *App) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	return a.cache.Stats(ctx)
}

// CacheClean removes cache entries older than keepDays.
func (a *App) CacheClean(ctx context.Context, keepDays int) (int, error) {
	if keepDays < 0 {
		return 0, zerr.With(domain.ErrInvalidConfig, "keep_days", keepDays)
	}
	return a.cache.Clean(ctx, keepDays)
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) registryHost() string {
	u, err := url.Parse(a.config.Registry.URL)
	if err != nil || u.Hostname() == "" {
		return domain.DefaultRegistryHost
	}
	return u.Hostname()
}
