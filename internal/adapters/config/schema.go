package config

// Squeezefile represents the structure of the squeeze.yaml configuration file.
type Squeezefile struct {
	Version string `yaml:"version"`
	// Root is the directory relative paths are resolved against. Defaults to the
	// directory of the file.
	Root     string               `yaml:"root"`
	Defaults BundleDTO            `yaml:"defaults"`
	Bundles  map[string]BundleDTO `yaml:"bundles"`
}

// BundleDTO represents a bundle definition in the configuration. Pointer fields
// distinguish an unset value from an explicit false.
type BundleDTO struct {
	Inputs               []string `yaml:"inputs"`
	Output               string   `yaml:"output"`
	Type                 string   `yaml:"type"`
	DocumentRoot         string   `yaml:"document_root"`
	Hosts                []string `yaml:"hosts"`
	LocalHosts           []string `yaml:"local_hosts"`
	AllHostsLocal        *bool    `yaml:"all_hosts_local"`
	CacheBuster          string   `yaml:"cache_buster"`
	CacheBusterParameter *string  `yaml:"cache_buster_parameter"`
	EmbedImages          string   `yaml:"embed_images"`
	URLMode              string   `yaml:"url_mode"`
	Minifier             string   `yaml:"minifier"`
	MinifierPath         string   `yaml:"minifier_path"`
	MinifierArgs         []string `yaml:"minifier_args"`
	Verify               *bool    `yaml:"verify"`
	IgnoreProblems       *bool    `yaml:"ignore_problems"`
	Compress             []string `yaml:"compress"`
}

// withDefaults returns b with every unset field taken from defaults.
func (b BundleDTO) withDefaults(defaults BundleDTO) BundleDTO {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	pickList := func(v, d []string) []string {
		if v == nil {
			return d
		}
		return v
	}
	pickBool := func(v, d *bool) *bool {
		if v == nil {
			return d
		}
		return v
	}

	b.Type = pick(b.Type, defaults.Type)
	b.DocumentRoot = pick(b.DocumentRoot, defaults.DocumentRoot)
	b.Hosts = pickList(b.Hosts, defaults.Hosts)
	b.LocalHosts = pickList(b.LocalHosts, defaults.LocalHosts)
	b.AllHostsLocal = pickBool(b.AllHostsLocal, defaults.AllHostsLocal)
	b.CacheBuster = pick(b.CacheBuster, defaults.CacheBuster)
	if b.CacheBusterParameter == nil {
		b.CacheBusterParameter = defaults.CacheBusterParameter
	}
	b.EmbedImages = pick(b.EmbedImages, defaults.EmbedImages)
	b.URLMode = pick(b.URLMode, defaults.URLMode)
	b.Minifier = pick(b.Minifier, defaults.Minifier)
	b.MinifierPath = pick(b.MinifierPath, defaults.MinifierPath)
	b.MinifierArgs = pickList(b.MinifierArgs, defaults.MinifierArgs)
	b.Verify = pickBool(b.Verify, defaults.Verify)
	b.IgnoreProblems = pickBool(b.IgnoreProblems, defaults.IgnoreProblems)
	b.Compress = pickList(b.Compress, defaults.Compress)
	return b
}
