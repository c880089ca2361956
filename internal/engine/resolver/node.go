package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/registry"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			registry.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[ports.Registry](ctx)
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

			return New(reg, tel, log, OptionsFromConfig(cfg.Resolver)), nil
		},
	})
}
