package app

import "go.trai.ch/squeeze/internal/core/ports"

// Components holds what the command line entry point needs besides the App.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
