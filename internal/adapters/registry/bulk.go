package registry

import (
	"context"

	"go.trai.ch/pkgcore/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// GetMetadataBulk fetches full metadata for names concurrently.
func (c *Client) GetMetadataBulk(ctx context.Context, names []string) []domain.Result[*domain.FullMetadata] {
	return fanOut(ctx, c.concurrency, names, c.GetMetadata)
}

// GetAbbreviatedBulk fetches abbreviated metadata for names concurrently.
func (c *Client) GetAbbreviatedBulk(ctx context.Context, names []string) []domain.Result[*domain.Metadata] {
	return fanOut(ctx, c.concurrency, names, c.GetAbbreviated)
}

// DownloadTarballBulk downloads urls concurrently.
func (c *Client) DownloadTarballBulk(ctx context.Context, urls []string) []domain.Result[[]byte] {
	return fanOut(ctx, c.concurrency, urls, c.DownloadTarball)
}

// fanOut runs fn for every key with at most limit in flight. Results are aligned with keys.
// Errors are recorded per item and never returned to the group, so siblings keep running.
func fanOut[T any](ctx context.Context, limit int, keys []string, fn func(context.Context, string) (T, error)) []domain.Result[T] {
	results := make([]domain.Result[T], len(keys))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i, key := range keys {
		g.Go(func() error {
			v, err := fn(ctx, key)
			results[i] = domain.Result[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
