// Package registry implements an npm-compatible registry client.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/pkgcore/internal/build"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	acceptFull        = "application/json"
	acceptAbbreviated = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"
)

// Client implements ports.Registry over HTTP.
type Client struct {
	baseURL     string
	http        *http.Client
	concurrency int
	store       *metaStore
	refresh     bool
	logger      ports.Logger
	group       singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithRefresh makes abbreviated lookups bypass the metadata cache. Fresh documents are still stored.
func WithRefresh(refresh bool) Option {
	return func(cl *Client) { cl.refresh = refresh }
}

// New creates a Client for cfg. The metadata cache is enabled when cfg.MetadataDir is set.
func New(cfg domain.RegistryConfig, logger ports.Logger, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.URL, "/")
	if base == "" {
		base = domain.DefaultRegistryURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "registry.url")
	}
	concurrency := max(cfg.Concurrency, 1)

	c := &Client{
		baseURL:     base,
		http:        newHTTPClient(concurrency, cfg.Timeout.Std()),
		concurrency: concurrency,
		logger:      logger,
	}
	if cfg.MetadataDir != "" {
		store, err := newMetaStore(cfg.MetadataDir, cfg.MetadataTTL.Std(), logger)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newHTTPClient(poolSize int, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        poolSize,
		MaxIdleConnsPerHost: poolSize,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// packageURL escapes scoped names as @scope%2fname.
func (c *Client) packageURL(name string) string {
	if scope, pkg, ok := strings.Cut(strings.TrimPrefix(name, "@"), "/"); ok && strings.HasPrefix(name, "@") {
		return c.baseURL + "/@" + url.PathEscape(scope) + "%2f" + url.PathEscape(pkg)
	}
	return c.baseURL + "/" + url.PathEscape(name)
}

// GetMetadata fetches the full registry document of name.
func (c *Client) GetMetadata(ctx context.Context, name string) (*domain.FullMetadata, error) {
	v, _, err := c.shared(ctx, name, "full:"+name, func(ctx context.Context) (any, error) {
		var meta domain.FullMetadata
		if err := c.getJSON(ctx, name, acceptFull, &meta); err != nil {
			return nil, err
		}
		return &meta, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.FullMetadata), nil
}

// GetAbbreviated fetches the install metadata of name, consulting the metadata cache first.
func (c *Client) GetAbbreviated(ctx context.Context, name string) (*domain.Metadata, error) {
	if c.store != nil && !c.refresh {
		meta, err := c.store.get(name)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		if meta != nil {
			return meta, nil
		}
	}

	v, shared, err := c.shared(ctx, name, "abbrev:"+name, func(ctx context.Context) (any, error) {
		var meta domain.Metadata
		if err := c.getJSON(ctx, name, acceptAbbreviated, &meta); err != nil {
			return nil, err
		}
		if c.store != nil {
			if err := c.store.put(name, &meta); err != nil {
				c.logger.Warn("metadata cache write failed", "package", name, "error", err)
			}
		}
		return &meta, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("metadata request shared", "package", name)
	}
	return v.(*domain.Metadata), nil
}

// shared runs fetch once per key for all concurrent callers. The fetch is detached from the
// cancellation of whichever caller started it; each caller stops waiting when its own ctx ends.
func (c *Client) shared(ctx context.Context, name, key string, fetch func(context.Context) (any, error)) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, domain.NewPackageError(domain.ErrNetwork, name, err)
	}
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fetch(detached)
	})
	select {
	case <-ctx.Done():
		return nil, false, domain.NewPackageError(domain.ErrNetwork, name, ctx.Err())
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	}
}

// DownloadTarball fetches the bytes at rawURL.
func (c *Client) DownloadTarball(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewPackageError(domain.ErrInvalidURL, rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewPackageError(domain.ErrNetwork, rawURL, transportError(ctx, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domain.NewPackageError(domain.ErrDownloadFailed, rawURL, statusError(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewPackageError(domain.ErrNetwork, rawURL, transportError(ctx, err))
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, name, accept string, v any) error {
	target := c.packageURL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.NewPackageError(domain.ErrInvalidURL, name, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewPackageError(domain.ErrNetwork, name, transportError(ctx, err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch code := resp.StatusCode; {
	case code >= 200 && code <= 299:
	case code == http.StatusNotFound || code == http.StatusGone:
		return domain.NewPackageError(domain.ErrPackageNotFound, name, nil)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.NewPackageError(domain.ErrNetwork, name, statusError(code))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.NewPackageError(domain.ErrParse, name, zerr.With(err, "url", target))
	}
	return nil
}

// statusError marks 5xx and 429 responses as retryable.
func statusError(code int) error {
	err := fmt.Errorf("unexpected status %d %s", code, http.StatusText(code))
	if code >= 500 || code == http.StatusTooManyRequests {
		return &domain.RetryableError{Err: err}
	}
	return err
}

// transportError marks connection failures as retryable unless ctx ended.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	return &domain.RetryableError{Err: err}
}

func userAgent() string {
	return "pkgcore/" + build.Version
}
