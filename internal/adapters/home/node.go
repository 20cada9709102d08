package home

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the graft node providing the home locator.
const NodeID graft.ID = "adapter.home"

func init() {
	graft.Register(graft.Node[*Locator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Locator, error) {
			return New(), nil
		},
	})
}
