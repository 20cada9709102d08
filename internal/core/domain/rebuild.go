package domain

import "time"

// Rebuild describes one rebuild of a bundle in watch mode.
type Rebuild struct {
	Bundle string
	Output string
	Type   AssetType
	// URL is the artifact path below the document root, or its base name when
	// the bundle has no document root.
	URL      string
	Duration time.Duration
	Err      error
}
