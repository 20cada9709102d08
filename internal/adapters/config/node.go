package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/adapters/logger"
	"go.trai.ch/squeeze/internal/core/ports"
)

// NodeID is the graft node providing the config loader.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, resolver), nil
		},
	})
}
