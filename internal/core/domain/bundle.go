package domain

// MinifierNone disables the minification stage.
const MinifierNone = "none"

// Bundle describes one build artifact: the entry files it is merged from and how
// the merged result is rewritten and minified.
type Bundle struct {
	// Name identifies the bundle in squeeze.yaml. Ad-hoc merges use the output base name.
	Name string
	// Inputs are the entry files. Their dependency closures are merged in order.
	Inputs []string
	// Output is the absolute path of the artifact.
	Output string
	// Type selects the dialect used for dependency resolution and minification.
	Type AssetType

	// DocumentRoot is the directory root-relative URLs resolve against.
	DocumentRoot string
	// Hosts are cycled through when URLs are made absolute.
	Hosts []string
	// LocalHosts are hosts served from DocumentRoot, eligible for cache busting.
	LocalHosts []string

	CacheBuster          CacheBusterType
	CacheBusterParameter string
	EmbedImages          EmbedType
	URLMode              URLMode

	// Minifier names the minification backend: builtin, yui_compressor, closure_compiler,
	// a command template, or none.
	Minifier     string
	MinifierPath string
	MinifierArgs []string

	Verify         bool
	IgnoreProblems bool
	Compress       []Compression
}

// IsCSS reports whether the bundle produces a stylesheet.
func (b *Bundle) IsCSS() bool {
	return b.Type == AssetTypeCSS
}

// MinifierEnabled reports whether a minification stage runs for the bundle.
func (b *Bundle) MinifierEnabled() bool {
	return b.Minifier != "" && b.Minifier != MinifierNone
}
