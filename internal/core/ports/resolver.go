package ports

import (
	"context"

	"go.trai.ch/pkgcore/internal/core/domain"
)

// Resolver defines the interface for turning declared dependencies into a resolved graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Resolve walks deps (name to constraint) transitively. Any failure aborts with no graph.
	Resolve(ctx context.Context, deps map[string]string) (*domain.ResolvedGraph, error)
}
