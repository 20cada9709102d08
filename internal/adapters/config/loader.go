// Package config provides the squeeze.yaml loader.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultMinifier is used when neither the bundle nor the defaults name one.
const DefaultMinifier = "builtin"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	Resolver ports.InputResolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, resolver ports.InputResolver) *Loader {
	return &Loader{Logger: logger, Resolver: resolver}
}

// Load finds squeeze.yaml in cwd or the closest parent and returns its bundles
// sorted by name.
func (l *Loader) Load(cwd string) ([]domain.Bundle, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the bundles declared in the file at configPath.
func (l *Loader) LoadFile(configPath string) ([]domain.Bundle, error) {
	var file Squeezefile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	root := resolveRoot(configPath, file.Root)
	names := slices.Sorted(maps.Keys(file.Bundles))
	if len(names) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s declares no bundles", configPath))
	}

	bundles := make([]domain.Bundle, 0, len(names))
	for _, name := range names {
		bundle, err := l.buildBundle(name, file.Bundles[name].withDefaults(file.Defaults), root)
		if err != nil {
			return nil, zerr.With(err, "bundle", name)
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) buildBundle(name string, dto BundleDTO, root string) (domain.Bundle, error) {
	if dto.Output == "" {
		return domain.Bundle{}, domain.ErrMissingBundleOutput
	}

	inputs, err := l.Resolver.ResolveInputs(dto.Inputs, root)
	if err != nil {
		return domain.Bundle{}, err
	}
	if len(inputs) == 0 {
		return domain.Bundle{}, domain.ErrNoInputFiles
	}

	output := resolvePath(root, dto.Output)
	typ, err := bundleType(dto.Type, output)
	if err != nil {
		return domain.Bundle{}, err
	}

	bundle := domain.Bundle{
		Name:                 name,
		Inputs:               inputs,
		Output:               output,
		Type:                 typ,
		Hosts:                dto.Hosts,
		LocalHosts:           dto.LocalHosts,
		CacheBusterParameter: domain.DefaultCacheBusterParameter,
		Minifier:             dto.Minifier,
		MinifierPath:         dto.MinifierPath,
		MinifierArgs:         dto.MinifierArgs,
		Verify:               typ == domain.AssetTypeJS,
	}
	if dto.DocumentRoot != "" {
		bundle.DocumentRoot = resolvePath(root, dto.DocumentRoot)
	}
	if dto.MinifierPath != "" {
		bundle.MinifierPath = resolvePath(root, dto.MinifierPath)
	}
	if bundle.Minifier == "" {
		bundle.Minifier = DefaultMinifier
	}
	if dto.AllHostsLocal != nil && *dto.AllHostsLocal {
		bundle.LocalHosts = bundle.Hosts
	}
	if dto.CacheBusterParameter != nil {
		bundle.CacheBusterParameter = *dto.CacheBusterParameter
	}
	if dto.Verify != nil {
		bundle.Verify = *dto.Verify
	}
	if dto.IgnoreProblems != nil {
		bundle.IgnoreProblems = *dto.IgnoreProblems
	}

	if err := parseOptions(&bundle, dto); err != nil {
		return domain.Bundle{}, err
	}
	return bundle, nil
}

func parseOptions(bundle *domain.Bundle, dto BundleDTO) error {
	var err error
	if bundle.CacheBuster, err = domain.ParseCacheBusterType(dto.CacheBuster); err != nil {
		return err
	}
	if bundle.EmbedImages, err = domain.ParseEmbedType(dto.EmbedImages); err != nil {
		return err
	}
	if bundle.URLMode, err = domain.ParseURLMode(dto.URLMode); err != nil {
		return err
	}
	for _, c := range dto.Compress {
		compression, err := domain.ParseCompression(c)
		if err != nil {
			return err
		}
		bundle.Compress = append(bundle.Compress, compression)
	}
	return nil
}

func bundleType(declared, output string) (domain.AssetType, error) {
	if declared != "" {
		return domain.ParseAssetType(declared)
	}
	return domain.AssetTypeOf(output)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return resolvePath(configDir, configuredRoot)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
