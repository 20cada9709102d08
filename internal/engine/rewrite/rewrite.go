// Package rewrite cache-busts and re-addresses the url() references of a stylesheet.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/squeeze/internal/engine/asset"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

var (
	urlPattern    = regexp.MustCompile(`url\([\s"']*([^\)"'\s]*)[\s"']*\)`)
	schemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*:)?//`)
)

// Rewriter rewrites every local url() of a stylesheet.
type Rewriter struct {
	logger       ports.Logger
	cacheBuster  domain.CacheBusterType
	parameter    string
	mode         domain.URLMode
	documentRoot string
	hosts        []string
	localHosts   []string
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithCacheBuster sets the cache buster type and its parameter name.
func WithCacheBuster(typ domain.CacheBusterType, parameter string) Option {
	return func(r *Rewriter) {
		r.cacheBuster = typ
		r.parameter = parameter
	}
}

// WithURLMode sets how rewritten URLs are addressed.
func WithURLMode(mode domain.URLMode) Option {
	return func(r *Rewriter) {
		r.mode = mode
	}
}

// WithDocumentRoot sets the directory root-relative URLs resolve against.
func WithDocumentRoot(root string) Option {
	return func(r *Rewriter) {
		r.documentRoot = root
	}
}

// WithHosts sets the hosts absolute URLs are spread over.
func WithHosts(hosts ...string) Option {
	return func(r *Rewriter) {
		r.hosts = hosts
	}
}

// WithLocalHosts sets the hosts whose URLs are served from the document root.
func WithLocalHosts(hosts ...string) Option {
	return func(r *Rewriter) {
		r.localHosts = hosts
	}
}

// New creates a Rewriter. Without options it soft-busts with the default parameter
// and keeps URLs as written.
func New(logger ports.Logger, opts ...Option) *Rewriter {
	r := &Rewriter{
		logger:      logger,
		cacheBuster: domain.CacheBusterSoft,
		parameter:   domain.DefaultCacheBusterParameter,
		mode:        domain.URLModeOriginal,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements pipeline.Stage.
func (r *Rewriter) Name() string { return "rewrite urls" }

// Run implements pipeline.Stage. The artifact is rewritten in place.
func (r *Rewriter) Run(_ context.Context, a *pipeline.Artifact) (bool, error) {
	if !r.active() {
		return true, nil
	}
	if err := r.Save(a.Path, ""); err != nil {
		return false, err
	}
	return true, nil
}

// Save rewrites file and writes the result to output, or back to file when
// output is empty.
func (r *Rewriter) Save(file, output string) error {
	content, err := os.ReadFile(file) //nolint:gosec // artifact path is chosen by the user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read stylesheet"), "path", file)
	}
	if output == "" {
		output = file
	}

	rewritten := r.Rewrite(string(content), file)

	//nolint:gosec // stylesheets are public artifacts
	if err := os.WriteFile(output, []byte(rewritten), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write stylesheet"), "path", output)
	}
	return nil
}

// Rewrite returns css with every local url() rewritten. References are resolved
// from the directory of file. A reference that cannot be resolved or found on
// disk is left untouched with a warning.
func (r *Rewriter) Rewrite(css, file string) string {
	resolver := asset.NewResolver(
		asset.WithBase(filepath.Dir(file)),
		asset.WithDocumentRoot(r.documentRoot),
		asset.WithHosts(r.localHosts...),
	)
	hosts := asset.NewResolver(asset.WithHosts(r.hosts...))

	urls := make(map[string]string)
	for _, m := range urlPattern.FindAllStringSubmatch(css, -1) {
		ref := m[1]
		if _, done := urls[ref]; done || skip(ref) || r.external(ref) {
			continue
		}
		url, err := r.url(resolver.Resolve(ref), hosts)
		if err != nil {
			r.logger.Warn(fmt.Sprintf("unable to rewrite %s: %v", ref, err))
			url = ref
		}
		urls[ref] = url
	}

	return urlPattern.ReplaceAllStringFunc(css, func(match string) string {
		ref := urlPattern.FindStringSubmatch(match)[1]
		url, ok := urls[ref]
		if !ok || url == ref {
			return match
		}
		return strings.Replace(match, ref, url, 1)
	})
}

func (r *Rewriter) url(p *asset.Path, hosts *asset.Resolver) (string, error) {
	var opts []asset.URLOption
	if r.busting() {
		opts = append(opts, asset.WithCacheBuster(r.cacheBuster), asset.WithParameter(r.parameter))
	}

	switch r.mode {
	case domain.URLModeRelative:
		return p.RelativePath(opts...)
	case domain.URLModeAbsolute:
		if host, ok := hosts.CycleHosts(); ok {
			opts = append(opts, asset.WithHost(host))
		}
		return p.AbsolutePath(opts...)
	default:
		return p.Path(opts...)
	}
}

func (r *Rewriter) busting() bool {
	return r.cacheBuster != "" && r.cacheBuster != domain.CacheBusterNone
}

func (r *Rewriter) active() bool {
	return r.busting() || (r.mode != "" && r.mode != domain.URLModeOriginal)
}

// skip reports references the rewriter never touches.
func skip(ref string) bool {
	return ref == "" || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "mhtml:")
}

// external reports references to hosts that are not served locally.
func (r *Rewriter) external(ref string) bool {
	if !schemePattern.MatchString(ref) {
		return false
	}
	for _, host := range asset.HostsWithScheme(r.localHosts) {
		if _, ok := asset.TrimHost(ref, host); ok {
			return false
		}
	}
	return true
}
