package ports

import (
	"context"

	"go.trai.ch/squeeze/internal/core/domain"
)

// Minifier is the terminal pipeline collaborator that compresses a merged artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=minifier.go -destination=mocks/mock_minifier.go -package=mocks
type Minifier interface {
	// Minify reads input and writes the minified result to output.
	// When output is empty or equal to input, the file is replaced in place.
	Minify(ctx context.Context, input, output string, typ domain.AssetType) error
}

// MinifierFactory selects a Minifier for a bundle.
type MinifierFactory interface {
	// ForBundle returns the minifier configured by the bundle.
	ForBundle(bundle *domain.Bundle) (Minifier, error)
}
