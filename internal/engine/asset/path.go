// Package asset implements the path algebra for URLs referenced from stylesheets:
// resolving a reference to a file on disk, and expressing that file as an absolute,
// relative or original URL, optionally cache-busted.
package asset

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/engine/cachebuster"
	"go.trai.ch/zerr"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z]{3,5}://`)

// Path is one URL reference as written in a source file.
//
// The original string never changes. Derived forms are computed on first use and
// cached on the instance.
type Path struct {
	original     string
	base         string
	documentRoot string
	hosts        []string

	hasHost    bool
	isAbsolute bool

	filename string
	absolute string
	relative string
}

// Option configures a Path or a Resolver.
type Option func(*config)

type config struct {
	base         string
	documentRoot string
	hosts        []string
}

// WithBase sets the directory relative references resolve against. Defaults to the working directory.
func WithBase(base string) Option {
	return func(c *config) {
		c.base = base
	}
}

// WithDocumentRoot sets the directory root-relative references resolve against.
func WithDocumentRoot(root string) Option {
	return func(c *config) {
		c.documentRoot = root
	}
}

// WithHosts sets the hosts served from the document root.
func WithHosts(hosts ...string) Option {
	return func(c *config) {
		c.hosts = hosts
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.base == "" {
		c.base, _ = os.Getwd()
	}
	c.base = absolute(c.base)
	if c.documentRoot != "" {
		c.documentRoot = absolute(c.documentRoot)
	}
	c.hosts = HostsWithScheme(c.hosts)
	return c
}

// NewPath creates a reference to path.
func NewPath(path string, opts ...Option) *Path {
	c := newConfig(opts)
	hasHost := schemePattern.MatchString(path)
	return &Path{
		original:     path,
		base:         c.base,
		documentRoot: c.documentRoot,
		hosts:        c.hosts,
		hasHost:      hasHost,
		isAbsolute:   hasHost || strings.HasPrefix(path, "/"),
	}
}

// Base returns the directory relative references resolve against.
func (p *Path) Base() string { return p.base }

// DocumentRoot returns the document root, or "" when unset.
func (p *Path) DocumentRoot() string { return p.documentRoot }

// Hosts returns the local hosts, each with a scheme.
func (p *Path) Hosts() []string { return p.hosts }

// Filename returns the absolute file system path of the reference. A query string
// in the reference is kept; use DiskPath for the file itself.
func (p *Path) Filename() (string, error) {
	if p.filename != "" {
		return p.filename, nil
	}

	if p.isAbsolute && p.documentRoot == "" {
		return "", zerr.With(domain.ErrNoDocumentRoot, "path", p.original)
	}
	if p.hasHost && len(p.hosts) == 0 {
		return "", zerr.With(domain.ErrNoHostsServed, "path", p.original)
	}

	stripped := p.stripHost(p.original)
	if schemePattern.MatchString(stripped) {
		return "", zerr.With(domain.ErrNoMatchingHost, "path", p.original)
	}

	dir := p.base
	if p.isAbsolute {
		dir = p.documentRoot
	}

	filename, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(stripped)))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", p.original)
	}
	p.filename = filename
	return filename, nil
}

// DiskPath returns Filename without its query string.
func (p *Path) DiskPath() (string, error) {
	filename, err := p.Filename()
	if err != nil {
		return "", err
	}
	disk, _, _ := strings.Cut(filename, "?")
	return disk, nil
}

// AbsolutePath returns the reference as a root-relative URL, prefixed with a host
// when WithHost is given. It requires a document root.
func (p *Path) AbsolutePath(opts ...URLOption) (string, error) {
	o := newURLOptions(opts)

	if p.absolute == "" {
		if p.documentRoot == "" {
			return "", zerr.With(domain.ErrNoDocumentRoot, "path", p.original)
		}
		filename, err := p.Filename()
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(p.documentRoot, filename)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", zerr.With(zerr.With(domain.ErrOutsideDocumentRoot, "path", p.original),
				"document_root", p.documentRoot)
		}
		p.absolute = "/"
		if rel != "." {
			p.absolute += filepath.ToSlash(rel)
		}
	}

	return p.withCacheBuster(HostWithScheme(o.host)+p.absolute, o)
}

// RelativePath returns the reference relative to the base directory.
func (p *Path) RelativePath(opts ...URLOption) (string, error) {
	if p.relative == "" {
		filename, err := p.Filename()
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(p.base, filename)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", p.original)
		}
		p.relative = filepath.ToSlash(rel)
	}
	return p.withCacheBuster(p.relative, newURLOptions(opts))
}

// Path returns the reference as written, cache-busted when requested.
func (p *Path) Path(opts ...URLOption) (string, error) {
	return p.withCacheBuster(p.original, newURLOptions(opts))
}

// String returns the reference as written.
func (p *Path) String() string {
	return p.original
}

// Rebase returns the same file referenced relative to base. Document root and hosts are kept.
func (p *Path) Rebase(base string) (*Path, error) {
	filename, err := p.Filename()
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(base, filename)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to rebase path"), "base", base)
	}
	return NewPath(filepath.ToSlash(rel),
		WithBase(base),
		WithDocumentRoot(p.documentRoot),
		WithHosts(p.hosts...),
	), nil
}

// Basename returns the last element of Filename.
func (p *Path) Basename() (string, error) {
	filename, err := p.Filename()
	if err != nil {
		return "", err
	}
	return filepath.Base(filename), nil
}

// Dirname returns the directory of Filename.
func (p *Path) Dirname() (string, error) {
	filename, err := p.Filename()
	if err != nil {
		return "", err
	}
	return filepath.Dir(filename), nil
}

// Exists reports whether the referenced file exists on disk.
func (p *Path) Exists() bool {
	disk, err := p.DiskPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(disk)
	return err == nil
}

// withCacheBuster busts the file on disk and swaps the trailing segment of url for
// the busted name, so leading segments stay as they were.
func (p *Path) withCacheBuster(url string, o urlOptions) (string, error) {
	if !o.bust {
		return url, nil
	}

	filename, err := p.Filename()
	if err != nil {
		return "", err
	}
	busted, err := cachebuster.Path(filename, o.typ, o.parameter)
	if err != nil {
		return "", err
	}

	name := lastSegment(url)
	i := strings.LastIndex(url, name)
	return url[:i] + filepath.Base(busted) + url[i+len(name):], nil
}

func (p *Path) stripHost(path string) string {
	for _, host := range p.hosts {
		if !schemePattern.MatchString(path) {
			return path
		}
		if rest, ok := TrimHost(path, host); ok {
			path = rest
		}
	}
	return path
}

// TrimHost removes host from the front of url. It reports false when url is not
// on host, so "http://cdn" never matches "http://cdn2/a.png".
func TrimHost(url, host string) (string, bool) {
	rest, ok := strings.CutPrefix(url, host)
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != '?') {
		return url, false
	}
	return rest, true
}

func absolute(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func lastSegment(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

// HostWithScheme defaults host to http:// when it has no scheme and strips one
// trailing slash. Protocol-relative hosts ("//cdn") are kept as they are.
func HostWithScheme(host string) string {
	if host == "" {
		return ""
	}
	if !schemePattern.MatchString(host) && !strings.HasPrefix(host, "//") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/")
}

// HostsWithScheme applies HostWithScheme to every host.
func HostsWithScheme(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, HostWithScheme(h))
		}
	}
	return out
}
