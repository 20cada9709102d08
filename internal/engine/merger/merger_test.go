package merger_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/engine/merger"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/squeeze/internal/engine/resolver"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func cssMerger(output string) *merger.Merger {
	return merger.New(
		merger.WithResolver(resolver.New(resolver.CSS{}, fs.NewWalker(), "")),
		merger.WithFilter(merger.NewStylesheetFilter(output)),
	)
}

func TestMerger_AppendWithoutResolver(t *testing.T) {
	m := merger.New()

	require.NoError(t, m.Append("a.js", "b.js", "a.js"))
	require.NoError(t, m.Append("c.js", "b.js"))

	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, m.Files())
}

func TestMerger_AppendResolvesDependencies(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.css": "@import 'c.css';\n",
		"b.css": "@import 'c.css';\n@import 'd.css';\n",
		"c.css": "p {}\n",
		"d.css": "h1 {}\n",
	})
	m := cssMerger(filepath.Join(dir, "out.css"))

	require.NoError(t, m.Append(filepath.Join(dir, "a.css")))
	require.NoError(t, m.Append(filepath.Join(dir, "b.css"), filepath.Join(dir, "a.css")))

	expected := []string{
		filepath.Join(dir, "c.css"),
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "d.css"),
		filepath.Join(dir, "b.css"),
	}
	assert.Equal(t, expected, m.Files())
}

func TestMerger_AppendMissingDependency(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.css": "@import 'gone.css';\n"})

	err := cssMerger(filepath.Join(dir, "out.css")).Append(filepath.Join(dir, "a.css"))
	assert.ErrorContains(t, err, "declared dependency could not be read")
}

func TestMerger_SaveStylesheet(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.css": "@import 'b.css';\n\n/* Dette er a.css */",
		"b.css": "/* Dette er b.css */",
	})
	output := filepath.Join(dir, "a.min.css")
	m := cssMerger(output)
	require.NoError(t, m.Append(filepath.Join(dir, "a.css")))

	require.NoError(t, m.Save(output))

	merged, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "/* Dette er b.css */\n\n\n/* Dette er a.css */\n", string(merged))
}

func TestMerger_WriteToGolden(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"css/site.css":         "@import 'parts/layout.css';\n\nbody {\n    background: url(../images/bg.png);\n}\n",
		"css/parts/layout.css": "#nav {\n    background: url('../../images/nav.png?embed=true') no-repeat;\n}\n.logo { background: url(/images/logo.png); }\n.tile { background: url(data:image/gif;base64,R0lGOD==); }\n",
	})
	m := cssMerger(filepath.Join(dir, "css", "site.min.css"))
	require.NoError(t, m.Append(filepath.Join(dir, "css", "site.css")))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "merged_stylesheet", buf.Bytes())
}

func TestMerger_WriteToPlain(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.js": "var a = 1;\n",
		"b.js": "var b = 2;",
	})
	m := merger.New()
	require.NoError(t, m.Append(filepath.Join(dir, "a.js"), filepath.Join(dir, "b.js")))

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;\n\nvar b = 2;\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestStage_Run(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "var a;"})
	m := merger.New()
	require.NoError(t, m.Append(filepath.Join(dir, "a.js")))

	stage := merger.NewStage(m)
	output := filepath.Join(dir, "build", "app.js")
	proceed, err := stage.Run(context.Background(), &pipeline.Artifact{
		Bundle: &domain.Bundle{Name: "app", Type: domain.AssetTypeJS},
		Path:   output,
	})
	require.NoError(t, err)
	assert.True(t, proceed)
	assert.Equal(t, "merge", stage.Name())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "var a;\n", string(content))
}
