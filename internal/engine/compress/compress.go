// Package compress writes precompressed siblings of an artifact.
package compress

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Stage writes one sibling per configured compression, e.g. app.min.js.gz.
type Stage struct {
	formats []domain.Compression
}

// NewStage creates a Stage. It returns nil when formats is empty, so the result
// can be handed to pipeline.New unconditionally.
func NewStage(formats ...domain.Compression) pipeline.Stage {
	if len(formats) == 0 {
		return nil
	}
	return &Stage{formats: formats}
}

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return "compress" }

// Run implements pipeline.Stage.
func (s *Stage) Run(ctx context.Context, a *pipeline.Artifact) (bool, error) {
	for _, format := range s.formats {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := File(a.Path, format); err != nil {
			return false, err
		}
	}
	return true, nil
}

// File compresses path into a sibling named after format and returns the sibling's path.
func File(path string, format domain.Compression) (string, error) {
	target := path + format.Extension()

	src, err := os.Open(path) //nolint:gosec // artifact path is chosen by the user
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", path)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(target) //nolint:gosec // sibling of the artifact
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create compressed artifact"), "path", target)
	}

	buf := bufio.NewWriter(dst)
	if err := encode(buf, src, format); err != nil {
		_ = dst.Close()
		return "", zerr.With(err, "path", target)
	}
	if err := buf.Flush(); err != nil {
		_ = dst.Close()
		return "", zerr.With(zerr.Wrap(err, "failed to write compressed artifact"), "path", target)
	}
	if err := dst.Close(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write compressed artifact"), "path", target)
	}
	return target, nil
}

func encode(w io.Writer, r io.Reader, format domain.Compression) error {
	var enc io.WriteCloser
	switch format {
	case domain.CompressionGzip:
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return zerr.Wrap(err, "failed to create gzip writer")
		}
		enc = gz
	case domain.CompressionBrotli:
		enc = brotli.NewWriterLevel(w, brotli.BestCompression)
	default:
		return zerr.With(domain.ErrUnknownCompression, "compression", string(format))
	}

	if _, err := io.Copy(enc, r); err != nil {
		_ = enc.Close()
		return zerr.Wrap(err, "failed to compress artifact")
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, "failed to compress artifact")
	}
	return nil
}
