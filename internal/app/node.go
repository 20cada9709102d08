package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squeeze/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/home"               //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/minify"             //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/reload"             //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/squeeze/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.WalkerNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			shell.LinterNodeID,
			minify.NodeID,
			progrock.NodeID,
			watcher.NodeID,
			reload.NodeID,
			home.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[ports.Walker](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	linter, err := graft.Dep[ports.Linter](ctx)
	if err != nil {
		return nil, err
	}
	minifiers, err := graft.Dep[ports.MinifierFactory](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	rs, err := graft.Dep[ports.ReloadServer](ctx)
	if err != nil {
		return nil, err
	}
	locator, err := graft.Dep[*home.Locator](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, log, walker, hasher, store, linter, minifiers, telemetry, w, rs, locator), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
