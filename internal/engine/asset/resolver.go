package asset

// Resolver stamps out Paths sharing a base, document root and host list, and owns
// the round-robin host counter. A Resolver is not safe for concurrent use; each
// build owns its own.
type Resolver struct {
	cfg       config
	hostIndex int
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	return &Resolver{cfg: newConfig(opts)}
}

// Resolve creates a Path for a reference using the current base.
func (r *Resolver) Resolve(path string) *Path {
	return NewPath(path,
		WithBase(r.cfg.base),
		WithDocumentRoot(r.cfg.documentRoot),
		WithHosts(r.cfg.hosts...),
	)
}

// SetBase changes the base for Paths created from now on.
func (r *Resolver) SetBase(base string) {
	r.cfg.base = absolute(base)
}

// Base returns the current base.
func (r *Resolver) Base() string { return r.cfg.base }

// DocumentRoot returns the document root.
func (r *Resolver) DocumentRoot() string { return r.cfg.documentRoot }

// Hosts returns the hosts, each with a scheme.
func (r *Resolver) Hosts() []string { return r.cfg.hosts }

// CycleHosts returns the next host in round-robin order. It reports false when
// the resolver has no hosts.
func (r *Resolver) CycleHosts() (string, bool) {
	if len(r.cfg.hosts) == 0 {
		return "", false
	}
	host := r.cfg.hosts[r.hostIndex%len(r.cfg.hosts)]
	r.hostIndex++
	return host, true
}
