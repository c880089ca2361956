package ports

import (
	"context"

	"go.trai.ch/pkgcore/internal/core/domain"
)

// Cache defines the interface for the content-addressed package cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type Cache interface {
	// Get looks up hash, trying each tier in order. A miss is not an error.
	Get(ctx context.Context, hash domain.ContentHash) (domain.CacheHit, error)

	// Put stores data under hash in every tier.
	Put(ctx context.Context, hash domain.ContentHash, data []byte) error

	// CheckMany partitions hashes into cached and missing without reading entry contents.
	CheckMany(ctx context.Context, hashes []domain.ContentHash) (cached, missing []domain.ContentHash, err error)

	// Warm loads every on-disk entry into the negative-lookup filter.
	Warm(ctx context.Context) error

	// Clean removes disk entries older than keepDays and returns how many were removed.
	Clean(ctx context.Context, keepDays int) (int, error)

	// Stats returns a snapshot of occupancy and counters.
	Stats(ctx context.Context) (domain.CacheStats, error)

	// RecordPopularity increments and returns the request count of a package name.
	RecordPopularity(name string) int

	// Popular returns up to n package names ordered by request count.
	Popular(n int) []string
}
