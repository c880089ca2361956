package ports

import (
	"context"

	"go.trai.ch/pkgcore/internal/core/domain"
)

// Registry defines the interface for reading package metadata and tarballs from a package registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// GetMetadata fetches the full metadata document of a package.
	GetMetadata(ctx context.Context, name string) (*domain.FullMetadata, error)

	// GetAbbreviated fetches the abbreviated install metadata of a package.
	GetAbbreviated(ctx context.Context, name string) (*domain.Metadata, error)

	// DownloadTarball fetches the raw bytes at url.
	DownloadTarball(ctx context.Context, url string) ([]byte, error)

	// GetMetadataBulk fetches full metadata for every name concurrently.
	// Results are aligned with names; one failure does not cancel the others.
	GetMetadataBulk(ctx context.Context, names []string) []domain.Result[*domain.FullMetadata]

	// GetAbbreviatedBulk fetches abbreviated metadata for every name concurrently.
	GetAbbreviatedBulk(ctx context.Context, names []string) []domain.Result[*domain.Metadata]

	// DownloadTarballBulk downloads every url concurrently.
	DownloadTarballBulk(ctx context.Context, urls []string) []domain.Result[[]byte]
}
