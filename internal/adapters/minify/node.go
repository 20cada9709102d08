package minify

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/shell"
	"go.trai.ch/squeeze/internal/core/ports"
)

// NodeID is the graft node providing the minifier factory.
const NodeID graft.ID = "adapter.minifier_factory"

func init() {
	graft.Register(graft.Node[ports.MinifierFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, shell.LocatorNodeID},
		Run: func(ctx context.Context) (ports.MinifierFactory, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[*shell.Locator](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(NewBuiltin(), executor, locator), nil
		},
	})
}
