package app

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultMinifier is the minifier used by merge when none is requested.
const DefaultMinifier = "builtin"

// MergeOptions configuration for the Merge method.
type MergeOptions struct {
	// Output is the artifact path or a directory to place it in. Defaults to the
	// first input with .min inserted before its extension.
	Output string
	// Force overwrites an existing output and skips the up-to-date check.
	Force bool
	// Type overrides the type guessed from the output extension.
	Type string

	Minifier     string
	MinifierArgs []string
	MinifierPath string

	IgnoreProblems   bool
	SkipVerification bool

	Hosts         []string
	LocalHosts    []string
	AllHostsLocal bool
	RelativeURLs  bool
	AbsoluteURLs  bool
	DocumentRoot  string

	CacheBuster string
	EmbedImages string
	Compress    []string
}

func (a *App) bundleFor(inputs []string, opts MergeOptions) (domain.Bundle, error) {
	if len(inputs) == 0 {
		return domain.Bundle{}, domain.ErrNoInputFiles
	}
	if opts.RelativeURLs && opts.AbsoluteURLs {
		return domain.Bundle{}, domain.ErrConflictingURLModes
	}

	abs := make([]string, len(inputs))
	for i, input := range inputs {
		p, err := filepath.Abs(input)
		if err != nil {
			return domain.Bundle{}, zerr.With(zerr.Wrap(err, "failed to resolve input"), "input", input)
		}
		abs[i] = p
	}

	output, err := outputPath(abs[0], opts.Output)
	if err != nil {
		return domain.Bundle{}, err
	}
	typ, err := a.mergeType(output, opts.Type)
	if err != nil {
		return domain.Bundle{}, err
	}

	bundle := domain.Bundle{
		Name:                 filepath.Base(output),
		Inputs:               abs,
		Output:               output,
		Type:                 typ,
		Hosts:                opts.Hosts,
		LocalHosts:           opts.LocalHosts,
		CacheBusterParameter: domain.DefaultCacheBusterParameter,
		URLMode:              domain.URLModeOriginal,
		Minifier:             opts.Minifier,
		MinifierArgs:         opts.MinifierArgs,
		Verify:               typ == domain.AssetTypeJS && !opts.SkipVerification,
		IgnoreProblems:       opts.IgnoreProblems,
	}
	if bundle.Minifier == "" {
		bundle.Minifier = DefaultMinifier
	}
	if opts.AllHostsLocal {
		bundle.LocalHosts = opts.Hosts
	}
	switch {
	case opts.RelativeURLs:
		bundle.URLMode = domain.URLModeRelative
	case opts.AbsoluteURLs:
		bundle.URLMode = domain.URLModeAbsolute
	}
	if opts.DocumentRoot != "" {
		if bundle.DocumentRoot, err = filepath.Abs(opts.DocumentRoot); err != nil {
			return domain.Bundle{}, zerr.Wrap(err, "failed to resolve document root")
		}
	}
	if opts.MinifierPath != "" {
		if bundle.MinifierPath, err = filepath.Abs(opts.MinifierPath); err != nil {
			return domain.Bundle{}, zerr.Wrap(err, "failed to resolve minifier path")
		}
	}

	if bundle.CacheBuster, err = domain.ParseCacheBusterType(opts.CacheBuster); err != nil {
		return domain.Bundle{}, err
	}
	if bundle.EmbedImages, err = domain.ParseEmbedType(opts.EmbedImages); err != nil {
		return domain.Bundle{}, err
	}
	for _, c := range opts.Compress {
		compression, err := domain.ParseCompression(c)
		if err != nil {
			return domain.Bundle{}, err
		}
		bundle.Compress = append(bundle.Compress, compression)
	}
	return bundle, nil
}

// outputPath names the artifact of a merge whose first input is first.
func outputPath(first, output string) (string, error) {
	ext := filepath.Ext(first)
	name := strings.TrimSuffix(filepath.Base(first), ext) + ".min" + ext
	if output == "" {
		return filepath.Join(filepath.Dir(first), name), nil
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve output"), "output", output)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(abs, name), nil
	}
	return abs, nil
}

func (a *App) mergeType(output, override string) (domain.AssetType, error) {
	if override != "" {
		return domain.ParseAssetType(override)
	}
	typ, err := domain.AssetTypeOf(output)
	if err != nil {
		a.warnf("unable to guess type (css/js) of %s, assuming js", output)
		return domain.AssetTypeJS, nil
	}
	return typ, nil
}
