package minify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/adapters/minify"
	"go.trai.ch/squeeze/internal/adapters/shell"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuiltin_Stylesheet(t *testing.T) {
	path := write(t, "site.css", "body {\n  color: #ff0000;\n  margin: 0px;\n}\n")

	require.NoError(t, minify.NewBuiltin().Minify(context.Background(), path, "", domain.AssetTypeCSS))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body{color:red;margin:0}", string(got))
}

func TestBuiltin_Script(t *testing.T) {
	input := write(t, "app.js", "// comment\nvar answer = 40 + 2;\n")
	output := filepath.Join(t.TempDir(), "dist", "app.min.js")

	require.NoError(t, minify.NewBuiltin().Minify(context.Background(), input, output, domain.AssetTypeJS))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(got), "comment")
	assert.Less(t, len(got), len("// comment\nvar answer = 40 + 2;\n"))
}

func TestBuiltin_MissingInput(t *testing.T) {
	err := minify.NewBuiltin().Minify(context.Background(), filepath.Join(t.TempDir(), "nope.js"), "", domain.AssetTypeJS)
	assert.Error(t, err)
}

func TestFactory_ForBundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	builtin := minify.NewBuiltin()
	factory := minify.NewFactory(builtin, mocks.NewMockExecutor(ctrl), shell.NewLocator(fs.NewWalker(), nil))

	tests := []struct {
		name     string
		minifier string
		want     any
		wantNil  bool
		wantErr  string
	}{
		{name: "builtin", minifier: "builtin", want: builtin},
		{name: "none", minifier: domain.MinifierNone, wantNil: true},
		{name: "empty", minifier: "", wantNil: true},
		{name: "yui", minifier: "yui_compressor", want: &shell.Minifier{}},
		{name: "closure", minifier: "closure_compiler", want: &shell.Minifier{}},
		{name: "template", minifier: "terser {input} -o {output}", want: &shell.Minifier{}},
		{name: "unknown", minifier: "jsmin", wantErr: domain.ErrMinifierNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := factory.ForBundle(&domain.Bundle{Minifier: tt.minifier})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}
