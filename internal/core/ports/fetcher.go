package ports

import (
	"context"

	"go.trai.ch/pkgcore/internal/core/domain"
)

// FetchOptions configures one fetch of a resolved graph.
type FetchOptions struct {
	// Dest is the install root. Each package is audited against Dest/<name>.
	Dest string
	// Auditor checks every package. It should be bound to capabilities for Dest.
	Auditor Auditor
	// Pins holds known content hashes by name@version.
	Pins domain.Pins
}

// Fetcher defines the interface for obtaining and verifying the tarballs of a resolved graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	Fetch(ctx context.Context, graph *domain.ResolvedGraph, opts FetchOptions) (*domain.FetchReport, error)
}
