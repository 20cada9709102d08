package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Compression is a precompression format written next to a bundle output.
type Compression string

const (
	// CompressionGzip writes a .gz sibling.
	CompressionGzip Compression = "gzip"
	// CompressionBrotli writes a .br sibling.
	CompressionBrotli Compression = "brotli"
)

// Extension returns the suffix appended to the output file name.
func (c Compression) Extension() string {
	if c == CompressionBrotli {
		return ".br"
	}
	return ".gz"
}

// ParseCompression parses "gzip"/"gz" or "brotli"/"br".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "gzip", "gz":
		return CompressionGzip, nil
	case "brotli", "br":
		return CompressionBrotli, nil
	default:
		return "", zerr.With(ErrUnknownCompression, "compression", s)
	}
}
