// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/squeeze/internal/adapters/cas"
	_ "go.trai.ch/squeeze/internal/adapters/config"
	_ "go.trai.ch/squeeze/internal/adapters/fs"
	_ "go.trai.ch/squeeze/internal/adapters/home"
	_ "go.trai.ch/squeeze/internal/adapters/logger"
	_ "go.trai.ch/squeeze/internal/adapters/minify"
	_ "go.trai.ch/squeeze/internal/adapters/reload"
	_ "go.trai.ch/squeeze/internal/adapters/shell"
	_ "go.trai.ch/squeeze/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/squeeze/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/squeeze/internal/app"
)
