package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/adapters/home"
	"go.trai.ch/squeeze/internal/adapters/logger"
	"go.trai.ch/squeeze/internal/core/ports"
)

const (
	// NodeID is the graft node providing the executor.
	NodeID graft.ID = "adapter.executor"
	// LocatorNodeID is the graft node providing the tool locator.
	LocatorNodeID graft.ID = "adapter.shell.locator"
	// LinterNodeID is the graft node providing the JsLint linter.
	LinterNodeID graft.ID = "adapter.shell.linter"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[*Locator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, home.NodeID},
		Run: func(ctx context.Context) (*Locator, error) {
			walker, err := graft.Dep[ports.Walker](ctx)
			if err != nil {
				return nil, err
			}
			homeDir, err := graft.Dep[*home.Locator](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocator(walker, homeDir.Dir), nil
		},
	})

	graft.Register(graft.Node[ports.Linter]{
		ID:        LinterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, LocatorNodeID},
		Run: func(ctx context.Context) (ports.Linter, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[*Locator](ctx)
			if err != nil {
				return nil, err
			}
			return NewLinter(executor, locator, ""), nil
		},
	})
}
