package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// ConfigNodeID is the unique identifier for the loaded configuration Graft node.
	ConfigNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[domain.Config]{
		ID:        ConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			return loader.Load(PathFromContext(ctx))
		},
	})
}
