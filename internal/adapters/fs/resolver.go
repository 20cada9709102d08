package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands bundle input patterns relative to root. Patterns keep
// their declared order since it is the merge order; matches of a single pattern
// are sorted. A file matched by several patterns is kept at its first position.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	var result domain.FileList

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, input)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrAssetNotFound, "path", path)
		}

		slices.Sort(matches)
		result.Add(matches...)
	}

	return result.Paths(), nil
}
