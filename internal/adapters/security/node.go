package security

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgcore/internal/core/ports"
)

// NodeID is the unique identifier for the auditor factory Graft node.
const NodeID graft.ID = "adapter.security"

func init() {
	graft.Register(graft.Node[ports.AuditorFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AuditorFactory, error) {
			return NewFactory(), nil
		},
	})
}
