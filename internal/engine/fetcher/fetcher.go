// Package fetcher obtains, verifies and caches the tarballs of a resolved graph.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a Fetcher.
type Options struct {
	Concurrency int
	Retries     int
	RetryDelay  time.Duration
}

// OptionsFromConfig maps the fetch section of the configuration.
func OptionsFromConfig(cfg domain.FetchConfig) Options {
	return Options{
		Concurrency: cfg.Concurrency,
		Retries:     cfg.Retries,
		RetryDelay:  cfg.RetryDelay.Std(),
	}
}

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	registry  ports.Registry
	cache     ports.Cache
	telemetry ports.Telemetry
	logger    ports.Logger
	opts      Options
}

// New creates a Fetcher.
func New(registry ports.Registry, cache ports.Cache, telemetry ports.Telemetry, logger ports.Logger, opts Options) *Fetcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 20
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}
	return &Fetcher{
		registry:  registry,
		cache:     cache,
		telemetry: telemetry,
		logger:    logger,
		opts:      opts,
	}
}

// Fetch obtains every package of graph. Pinned packages already in the cache are served from it;
// the rest are downloaded. Failures are collected per package and joined; they do not stop siblings.
// The report is returned even when err is non-nil.
func (f *Fetcher) Fetch(ctx context.Context, graph *domain.ResolvedGraph, opts ports.FetchOptions) (*domain.FetchReport, error) {
	if opts.Auditor == nil {
		return nil, zerr.With(domain.ErrInvalidConfig, "field", "auditor")
	}
	start := time.Now()
	pkgs := graph.Packages()

	cached, err := f.cachedPins(ctx, pkgs, opts.Pins)
	if err != nil {
		return nil, err
	}

	results := make([]domain.FetchResult, len(pkgs))
	var g errgroup.Group
	g.SetLimit(f.opts.Concurrency)
	for i, pkg := range pkgs {
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, pkg, opts, cached)
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.FetchReport{
		Packages: len(pkgs),
		Results:  results,
	}
	var errs []error
	for _, r := range results {
		switch {
		case r.Err != nil:
			report.Failed++
			errs = append(errs, r.Err)
		case r.Cached():
			report.Cached++
		default:
			report.Downloaded++
			report.BytesDownloaded += int64(r.Size)
		}
	}
	report.Duration = time.Since(start)

	f.logger.Info("fetch complete",
		"packages", report.Packages,
		"cached", report.Cached,
		"downloaded", report.Downloaded,
		"failed", report.Failed,
		"bytes", report.BytesDownloaded,
		"duration", report.Duration)

	return report, errors.Join(errs...)
}

// cachedPins returns the pinned hashes that the cache already holds.
func (f *Fetcher) cachedPins(ctx context.Context, pkgs []domain.ResolvedPackage, pins domain.Pins) (map[domain.ContentHash]bool, error) {
	var hashes []domain.ContentHash
	for _, pkg := range pkgs {
		if h, ok := pins.Lookup(pkg); ok {
			hashes = append(hashes, h)
		}
	}
	if len(hashes) == 0 {
		return nil, nil
	}

	hits, _, err := f.cache.CheckMany(ctx, hashes)
	if err != nil {
		return nil, err
	}
	set := make(map[domain.ContentHash]bool, len(hits))
	for _, h := range hits {
		set[h] = true
	}
	return set, nil
}

func (f *Fetcher) fetchOne(
	ctx context.Context,
	pkg domain.ResolvedPackage,
	opts ports.FetchOptions,
	cached map[domain.ContentHash]bool,
) (res domain.FetchResult) {
	res = domain.FetchResult{Package: pkg, Dest: domain.PackageDest(opts.Dest, pkg.Name)}

	ctx, vertex := f.telemetry.Record(ctx, "fetch "+pkg.Key())
	defer func() {
		if res.Err == nil && res.Cached() {
			vertex.Cached()
		}
		vertex.Complete(res.Err)
	}()

	f.cache.RecordPopularity(pkg.Name)
	pin, pinned := opts.Pins.Lookup(pkg)

	scripts := opts.Auditor.AuditScripts(pkg.Name, pkg.HasInstallScript)
	if pre := opts.Auditor.AuditPackage(res.Dest, pin, 0).Merge(scripts); pre.Blocked() {
		res.Audit = pre
		res.Err = violation(pkg, pre)
		return res
	}

	var data []byte
	if pinned && cached[pin] {
		hit, err := f.cache.Get(ctx, pin)
		if err != nil {
			res.Err = err
			return res
		}
		if hit.Hit() {
			data, res.Tier = hit.Data, hit.Tier
		}
	}

	if data == nil {
		downloaded, err := f.download(ctx, pkg, opts.Auditor)
		if err != nil {
			res.Err = err
			return res
		}
		data, res.Tier = downloaded, domain.TierMiss
	}

	res.Hash = domain.HashBytes(data)
	res.Size = len(data)

	if pinned {
		if err := opts.Auditor.VerifyIntegrity(data, pin); err != nil {
			var ie *domain.IntegrityError
			if errors.As(err, &ie) {
				ie.Package = pkg.Key()
			}
			res.Err = err
			return res
		}
	}

	res.Audit = opts.Auditor.AuditPackage(res.Dest, res.Hash, uint64(len(data))).Merge(scripts)
	if res.Audit.Blocked() {
		res.Err = violation(pkg, res.Audit)
		return res
	}
	for _, issue := range res.Audit.Issues {
		f.logger.Warn("security issue", "package", pkg.Key(), "severity", issue.Severity.String(),
			"category", string(issue.Category), "description", issue.Description)
	}

	if res.Tier == domain.TierMiss {
		if err := f.cache.Put(ctx, res.Hash, data); err != nil {
			res.Err = err
			return res
		}
	}

	f.logger.Debug("package fetched", "package", pkg.Key(), "hash", res.Hash.String(), "tier", res.Tier.String(), "bytes", res.Size)
	return res
}

// download fetches, retries and checks the registry digest of pkg's tarball.
func (f *Fetcher) download(ctx context.Context, pkg domain.ResolvedPackage, auditor ports.Auditor) ([]byte, error) {
	if pkg.TarballURL == "" {
		return nil, domain.NewPackageError(domain.ErrDownloadFailed, pkg.Key(), errors.New("no tarball url"))
	}
	if err := auditor.CheckURL(pkg.TarballURL); err != nil {
		return nil, domain.NewPackageError(domain.ErrSecurityViolation, pkg.Key(), err)
	}

	var data []byte
	err := retry(ctx, f.opts.Retries, f.opts.RetryDelay, func() error {
		b, err := f.registry.DownloadTarball(ctx, pkg.TarballURL)
		if err != nil {
			if domain.IsRetryable(err) {
				f.logger.Debug("download failed, retrying", "package", pkg.Key(), "error", err)
			}
			return err
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := auditor.VerifyRegistryDigest(data, pkg.Shasum, pkg.Integrity); err != nil {
		return nil, domain.NewPackageError(domain.ErrIntegrityMismatch, pkg.Key(), err)
	}
	return data, nil
}

func violation(pkg domain.ResolvedPackage, audit domain.AuditResult) error {
	categories := make([]string, 0, len(audit.Issues))
	for _, issue := range audit.Issues {
		categories = append(categories, string(issue.Category))
	}
	return domain.NewPackageError(domain.ErrSecurityViolation, pkg.Key(),
		fmt.Errorf("risk score %d (%s)", audit.RiskScore, strings.Join(categories, ", ")))
}
