package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/home"
	"go.trai.ch/squeeze/internal/core/ports"
)

// NodeID is the graft node providing the build info store.
const NodeID graft.ID = "adapter.build_info_store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{home.NodeID},
		Run: func(ctx context.Context) (ports.BuildInfoStore, error) {
			locator, err := graft.Dep[*home.Locator](ctx)
			if err != nil {
				return nil, err
			}
			return NewLazyStore(func() (string, error) {
				return locator.Path(DefaultFileName)
			}), nil
		},
	})
}
