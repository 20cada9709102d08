package ports

import "go.trai.ch/squeeze/internal/core/domain"

// ConfigLoader defines the interface for loading bundle declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads squeeze.yaml from the given working directory and returns its bundles
	// with every path made absolute.
	Load(cwd string) ([]domain.Bundle, error)
}
