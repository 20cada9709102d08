package asset

import "go.trai.ch/squeeze/internal/core/domain"

// URLOption configures how a URL accessor renders a Path.
type URLOption func(*urlOptions)

type urlOptions struct {
	bust      bool
	typ       domain.CacheBusterType
	parameter string
	host      string
}

func newURLOptions(opts []URLOption) urlOptions {
	o := urlOptions{
		typ:       domain.CacheBusterSoft,
		parameter: domain.DefaultCacheBusterParameter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCacheBuster requests a cache-busted URL of the given type.
func WithCacheBuster(typ domain.CacheBusterType) URLOption {
	return func(o *urlOptions) {
		if typ == "" || typ == domain.CacheBusterNone {
			return
		}
		o.bust = true
		o.typ = typ
	}
}

// WithParameter requests a cache-busted URL using parameter as the token name.
// An empty parameter writes a bare timestamp.
func WithParameter(parameter string) URLOption {
	return func(o *urlOptions) {
		o.bust = true
		o.parameter = parameter
	}
}

// WithHost prefixes absolute URLs with host.
func WithHost(host string) URLOption {
	return func(o *urlOptions) {
		o.host = host
	}
}
