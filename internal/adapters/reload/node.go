package reload

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/logger"
	"go.trai.ch/squeeze/internal/core/ports"
)

// NodeID is the unique identifier for the live reload Graft node.
const NodeID graft.ID = "adapter.reload"

func init() {
	graft.Register(graft.Node[ports.ReloadServer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ReloadServer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
