package shell_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/adapters/shell"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func artifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYUICompressor_Argv(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	bin := t.TempDir()
	jar := touch(t, filepath.Join(bin, "yuicompressor-2.4.8.jar"))
	input := artifact(t, "app.js", "var a = 1;")
	output := filepath.Join(t.TempDir(), "app.min.js")

	executor.EXPECT().
		Execute(gomock.Any(), filepath.Dir(output), gomock.Any(), nil, nil).
		DoAndReturn(func(_ context.Context, _ string, argv []string, _, _ io.Writer) error {
			assert.Equal(t, []string{
				"java", "-jar", jar, "--type", "js", "--nomunge",
				"-o", output, input,
			}, argv)
			return nil
		})

	m := shell.NewYUICompressor(executor, shell.NewLocator(fs.NewWalker(), nil), bin, []string{"--nomunge"})
	require.NoError(t, m.Minify(context.Background(), input, output, domain.AssetTypeJS))
}

func TestClosureCompiler_InPlaceUsesTemporaryCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	bin := t.TempDir()
	jar := touch(t, filepath.Join(bin, "closure-compiler-v20240317.jar"))
	input := artifact(t, "app.min.js", "var a = 1;")

	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), nil, nil).
		DoAndReturn(func(_ context.Context, _ string, argv []string, _, _ io.Writer) error {
			require.Len(t, argv, 7)
			assert.Equal(t, []string{"java", "-jar", jar, "--js_output_file", input, "--js"}, argv[:6])
			source := argv[6]
			assert.NotEqual(t, input, source)
			assert.True(t, strings.HasSuffix(source, ".js"))
			content, err := os.ReadFile(source)
			require.NoError(t, err)
			assert.Equal(t, "var a = 1;", string(content))
			return nil
		})

	m := shell.NewClosureCompiler(executor, shell.NewLocator(fs.NewWalker(), nil), bin, nil)
	require.NoError(t, m.Minify(context.Background(), input, "", domain.AssetTypeJS))
}

func TestClosureCompiler_RejectsStylesheets(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	m := shell.NewClosureCompiler(executor, shell.NewLocator(fs.NewWalker(), nil), "", nil)
	input := artifact(t, "site.css", "a{}")
	err := m.Minify(context.Background(), input, input+".min", domain.AssetTypeCSS)

	assert.ErrorContains(t, err, domain.ErrUnknownAssetType.Error())
}

func TestJavaMinifier_JarNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	t.Setenv(shell.YUICompressor.EnvVar, "")
	t.Chdir(t.TempDir())

	m := shell.NewYUICompressor(executor, shell.NewLocator(fs.NewWalker(), nil), t.TempDir(), nil)
	input := artifact(t, "app.js", "")
	err := m.Minify(context.Background(), input, input, domain.AssetTypeJS)

	assert.ErrorContains(t, err, domain.ErrMinifierNotFound.Error())
}

func TestCommand_Template(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	input := artifact(t, "site.css", "a { color: red; }")
	output := filepath.Join(t.TempDir(), "out", "site.min.css")

	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"csso", input, "--output", output, "--lang=css", "-c"}, nil, nil).
		Return(nil)

	m := shell.NewCommand(executor, "csso {input} --output {output} --lang={type}", []string{"-c"})
	require.NoError(t, m.Minify(context.Background(), input, output, domain.AssetTypeCSS))
	assert.DirExists(t, filepath.Dir(output))
}

func TestCommand_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), nil, nil).Return(domain.ErrCommandFailed)

	input := artifact(t, "app.js", "")
	m := shell.NewCommand(executor, "terser {input} -o {output}", nil)

	assert.ErrorIs(t, m.Minify(context.Background(), input, input, domain.AssetTypeJS), domain.ErrCommandFailed)
}
