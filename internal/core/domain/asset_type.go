package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// AssetType identifies the source dialect of a bundle.
type AssetType string

const (
	// AssetTypeCSS is a stylesheet bundle, dependencies declared with @import.
	AssetTypeCSS AssetType = "css"
	// AssetTypeJS is a script bundle, dependencies declared with @depend comments.
	AssetTypeJS AssetType = "js"
)

// Extension returns the file extension of the type, including the leading dot.
func (t AssetType) Extension() string {
	return "." + string(t)
}

// MediaType returns the MIME type used when minifying the type.
func (t AssetType) MediaType() string {
	if t == AssetTypeCSS {
		return "text/css"
	}
	return "application/javascript"
}

// ParseAssetType parses "css" or "js" (case-insensitive, leading dot allowed).
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "css":
		return AssetTypeCSS, nil
	case "js":
		return AssetTypeJS, nil
	default:
		return "", zerr.With(ErrUnknownAssetType, "type", s)
	}
}

// AssetTypeOf guesses the type of a file from its extension.
func AssetTypeOf(file string) (AssetType, error) {
	t, err := ParseAssetType(filepath.Ext(file))
	if err != nil {
		return "", zerr.With(ErrUnknownAssetType, "file", file)
	}
	return t, nil
}
