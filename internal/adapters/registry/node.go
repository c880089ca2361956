package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/adapters/logger"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// NodeID is the unique identifier for the registry client Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Registry, log, WithRefresh(cfg.Registry.Refresh))
		},
	})
}
