package pipeline

import (
	"context"

	"go.trai.ch/squeeze/internal/core/ports"
)

// MinifyStage hands the artifact to the external minifier, replacing it in place.
type MinifyStage struct {
	minifier ports.Minifier
}

// NewMinifyStage creates a MinifyStage.
func NewMinifyStage(minifier ports.Minifier) *MinifyStage {
	return &MinifyStage{minifier: minifier}
}

// Name implements Stage.
func (s *MinifyStage) Name() string { return "minify" }

// Run implements Stage.
func (s *MinifyStage) Run(ctx context.Context, a *Artifact) (bool, error) {
	if err := s.minifier.Minify(ctx, a.Path, a.Path, a.Bundle.Type); err != nil {
		return false, err
	}
	return true, nil
}
