package app

import "go.trai.ch/squeeze/internal/core/domain"

// BundleFor exposes bundleFor for tests.
func (a *App) BundleFor(inputs []string, opts MergeOptions) (domain.Bundle, error) {
	return a.bundleFor(inputs, opts)
}

// CommonDir exposes commonDir for tests.
var CommonDir = commonDir
