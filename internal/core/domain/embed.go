package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// EmbedSizeLimit is the largest data URI, in bytes, that is inlined into a stylesheet.
const EmbedSizeLimit = 32768

// EmbedMarker is the query a URL must carry to be considered for embedding.
const EmbedMarker = "?embed=true"

// EmbedType selects how flagged images are inlined.
type EmbedType string

const (
	// EmbedNone leaves image URLs untouched.
	EmbedNone EmbedType = "none"
	// EmbedDataURI replaces image URLs with base64 data URIs.
	EmbedDataURI EmbedType = "data_uri"
	// EmbedMHTML replaces image URLs with mhtml: references into a multipart block.
	EmbedMHTML EmbedType = "mhtml"
)

// ParseEmbedType parses an embed type. The empty string yields none.
func ParseEmbedType(s string) (EmbedType, error) {
	switch EmbedType(strings.ToLower(s)) {
	case "", EmbedNone:
		return EmbedNone, nil
	case EmbedDataURI:
		return EmbedDataURI, nil
	case EmbedMHTML:
		return EmbedMHTML, nil
	default:
		return "", zerr.With(ErrUnknownEmbedType, "type", s)
	}
}
