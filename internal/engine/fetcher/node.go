package fetcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/adapters/cache"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/registry"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "engine.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			registry.NodeID,
			cache.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.Cache](ctx)
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

			return New(reg, store, tel, log, OptionsFromConfig(cfg.Fetch)), nil
		},
	})
}
