package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// DefaultCacheBusterParameter is the parameter name used when none is given.
const DefaultCacheBusterParameter = "jcb"

// CacheBusterType selects how a modification time is attached to a URL.
type CacheBusterType string

const (
	// CacheBusterNone leaves URLs untouched.
	CacheBusterNone CacheBusterType = "none"
	// CacheBusterSoft appends the mtime as a query parameter: logo.png?jcb=1234567890.
	CacheBusterSoft CacheBusterType = "soft"
	// CacheBusterHard embeds the mtime in the file name: logo-jcb1234567890.png.
	CacheBusterHard CacheBusterType = "hard"
	// CacheBusterRails appends the bare mtime unless a query exists: logo.png?1234567890.
	CacheBusterRails CacheBusterType = "rails"
)

// ParseCacheBusterType parses a cache buster type. The empty string yields soft.
func ParseCacheBusterType(s string) (CacheBusterType, error) {
	switch CacheBusterType(strings.ToLower(s)) {
	case "", CacheBusterSoft:
		return CacheBusterSoft, nil
	case CacheBusterHard:
		return CacheBusterHard, nil
	case CacheBusterRails:
		return CacheBusterRails, nil
	case CacheBusterNone:
		return CacheBusterNone, nil
	default:
		return "", zerr.With(ErrUnknownCacheBuster, "type", s)
	}
}
