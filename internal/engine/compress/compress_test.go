package compress_test

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/engine/compress"
	"go.trai.ch/squeeze/internal/engine/pipeline"
)

var content = strings.Repeat("body{color:red}", 64)

func artifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.min.css")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decode(t *testing.T, path string, open func(io.Reader) (io.Reader, error)) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	r, err := open(f)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestStage_WritesSiblings(t *testing.T) {
	path := artifact(t)

	stage := compress.NewStage(domain.CompressionGzip, domain.CompressionBrotli)
	require.NotNil(t, stage)
	assert.Equal(t, "compress", stage.Name())

	done, err := stage.Run(context.Background(), &pipeline.Artifact{Path: path})
	require.NoError(t, err)
	assert.True(t, done)

	gz := decode(t, path+".gz", func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) })
	assert.Equal(t, content, gz)

	br := decode(t, path+".br", func(r io.Reader) (io.Reader, error) { return brotli.NewReader(r), nil })
	assert.Equal(t, content, br)
}

func TestNewStage_WithoutFormats(t *testing.T) {
	assert.Nil(t, compress.NewStage())
}

func TestFile_UnknownCompression(t *testing.T) {
	_, err := compress.File(artifact(t), domain.Compression("zip"))
	assert.ErrorContains(t, err, domain.ErrUnknownCompression.Error())
}

func TestFile_MissingArtifact(t *testing.T) {
	_, err := compress.File(filepath.Join(t.TempDir(), "missing.css"), domain.CompressionGzip)
	assert.Error(t, err)
}
