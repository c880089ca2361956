package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/adapters/cache"              //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgcore/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgcore/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgcore/internal/adapters/security"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgcore/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/pkgcore/internal/engine/fetcher"
	"go.trai.ch/pkgcore/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			resolver.NodeID,
			fetcher.NodeID,
			cache.NodeID,
			security.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[ports.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	fet, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.Cache](ctx)
	if err != nil {
		return nil, err
	}

	auditors, err := graft.Dep[ports.AuditorFactory](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, res, fet, store, auditors, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
	}, nil
}
