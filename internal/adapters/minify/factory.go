package minify

import (
	"strings"

	"go.trai.ch/squeeze/internal/adapters/shell"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

// Minifier names accepted in bundles. Any other name containing a space or a
// placeholder is run as a command template.
const (
	NameBuiltin         = "builtin"
	NameYUICompressor   = "yui_compressor"
	NameClosureCompiler = "closure_compiler"
)

var _ ports.MinifierFactory = (*Factory)(nil)

// Factory implements ports.MinifierFactory.
type Factory struct {
	builtin  *Builtin
	executor ports.Executor
	locator  *shell.Locator
}

// NewFactory creates a Factory.
func NewFactory(builtin *Builtin, executor ports.Executor, locator *shell.Locator) *Factory {
	return &Factory{builtin: builtin, executor: executor, locator: locator}
}

// ForBundle implements ports.MinifierFactory. It returns nil when the bundle
// disables minification.
func (f *Factory) ForBundle(bundle *domain.Bundle) (ports.Minifier, error) {
	if !bundle.MinifierEnabled() {
		return nil, nil
	}

	switch name := strings.ToLower(bundle.Minifier); name {
	case NameBuiltin:
		return f.builtin, nil
	case NameYUICompressor, "yui", "yuicompressor":
		return shell.NewYUICompressor(f.executor, f.locator, bundle.MinifierPath, bundle.MinifierArgs), nil
	case NameClosureCompiler, "closure":
		return shell.NewClosureCompiler(f.executor, f.locator, bundle.MinifierPath, bundle.MinifierArgs), nil
	default:
		if isTemplate(bundle.Minifier) {
			return shell.NewCommand(f.executor, bundle.Minifier, bundle.MinifierArgs), nil
		}
		return nil, zerr.With(domain.ErrMinifierNotFound, "minifier", bundle.Minifier)
	}
}

func isTemplate(s string) bool {
	return strings.ContainsAny(s, " \t") ||
		strings.Contains(s, shell.InputPlaceholder) ||
		strings.Contains(s, shell.OutputPlaceholder)
}
