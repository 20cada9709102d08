// Package minify provides the minification backends and picks one per bundle.
package minify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Minifier = (*Builtin)(nil)

// Builtin minifies in process with tdewolff/minify.
type Builtin struct {
	m *tdminify.M
}

// NewBuiltin creates a Builtin minifier for stylesheets and scripts.
func NewBuiltin() *Builtin {
	m := tdminify.New()
	m.AddFunc(domain.AssetTypeCSS.MediaType(), css.Minify)
	m.AddFunc(domain.AssetTypeJS.MediaType(), js.Minify)
	return &Builtin{m: m}
}

// Minify implements ports.Minifier.
func (b *Builtin) Minify(ctx context.Context, input, output string, typ domain.AssetType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if output == "" {
		output = input
	}

	src, err := os.ReadFile(input) //nolint:gosec // artifact path is chosen by the user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read artifact"), "path", input)
	}

	var dst bytes.Buffer
	dst.Grow(len(src))
	if err := b.m.Minify(typ.MediaType(), &dst, bytes.NewReader(src)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to minify artifact"), "path", input)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", output)
	}
	//nolint:gosec // minified artifacts are public
	if err := os.WriteFile(output, dst.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", output)
	}
	return nil
}
