package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// URLMode selects the form url() references take after rewriting.
type URLMode string

const (
	// URLModeOriginal keeps references as written.
	URLModeOriginal URLMode = "original"
	// URLModeRelative makes references relative to the artifact.
	URLModeRelative URLMode = "relative"
	// URLModeAbsolute makes references root-relative, cycling hosts when configured.
	URLModeAbsolute URLMode = "absolute"
)

// ParseURLMode parses a URL mode. The empty string yields original.
func ParseURLMode(s string) (URLMode, error) {
	switch URLMode(strings.ToLower(s)) {
	case "", URLModeOriginal:
		return URLModeOriginal, nil
	case URLModeRelative:
		return URLModeRelative, nil
	case URLModeAbsolute:
		return URLModeAbsolute, nil
	default:
		return "", zerr.With(ErrUnknownURLMode, "mode", s)
	}
}
