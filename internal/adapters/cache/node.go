package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/adapters/logger"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// NodeID is the unique identifier for the cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Cache, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			c, err := New(OptionsFromConfig(cfg.Cache), log)
			if err != nil {
				return nil, err
			}
			if cfg.Cache.WarmOnStart {
				if err := c.Warm(ctx); err != nil {
					return nil, err
				}
			}
			return c, nil
		},
	})
}
