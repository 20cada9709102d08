package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/adapters/cas"
	"go.trai.ch/squeeze/internal/adapters/fs"
	"go.trai.ch/squeeze/internal/adapters/telemetry"
	"go.trai.ch/squeeze/internal/app"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var mtime = time.Unix(1234567890, 0)

type fakeHome struct {
	dir string
}

func (h *fakeHome) SetOverride(dir string) { h.dir = dir }

type fixture struct {
	loader    *mocks.MockConfigLoader
	logger    *mocks.MockLogger
	hasher    *mocks.MockHasher
	store     *mocks.MockBuildInfoStore
	linter    *mocks.MockLinter
	minifiers *mocks.MockMinifierFactory
	watcher   *mocks.MockWatcher
	reload    *mocks.MockReloadServer
	home      *fakeHome
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockBuildInfoStore(ctrl),
		linter:    mocks.NewMockLinter(ctrl),
		minifiers: mocks.NewMockMinifierFactory(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		reload:    mocks.NewMockReloadServer(ctrl),
		home:      &fakeHome{},
	}
	f.app = app.New(
		f.loader,
		f.logger,
		fs.NewWalker(),
		f.hasher,
		f.store,
		f.linter,
		f.minifiers,
		telemetry.NewNoOp(),
		f.watcher,
		f.reload,
		f.home,
	)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return f
}

// freshBuilds expects every build to be out of date and recorded.
func (f *fixture) freshBuilds() {
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil).AnyTimes()
	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().Put(gomock.Any()).Return(nil).AnyTimes()
	f.minifiers.EXPECT().ForBundle(gomock.Any()).Return(nil, nil).AnyTimes()
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func stylesheets(t *testing.T) (dir, entry string) {
	t.Helper()
	dir = t.TempDir()
	entry = write(t, filepath.Join(dir, "a.css"), "@import 'b.css';\nbody { background: url(img/logo.png); }\n")
	write(t, filepath.Join(dir, "b.css"), "p { color: red; }\n")
	write(t, filepath.Join(dir, "img", "logo.png"), "png")
	return dir, entry
}

func TestMerge_Stylesheet(t *testing.T) {
	f := newFixture(t)
	f.freshBuilds()
	dir, entry := stylesheets(t)

	err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{CacheBuster: "soft"})
	require.NoError(t, err)

	merged := read(t, filepath.Join(dir, "a.min.css"))
	assert.NotContains(t, merged, "@import")
	assert.Contains(t, merged, "url(img/logo.png?jcb=1234567890)")
	assert.Less(t, strings.Index(merged, "p { color: red; }"), strings.Index(merged, "body"))
}

func TestMerge_RecordsBuild(t *testing.T) {
	f := newFixture(t)
	dir, entry := stylesheets(t)
	output := filepath.Join(dir, "out", "site.css")

	f.hasher.EXPECT().ComputeFingerprint(
		[]string{filepath.Join(dir, "b.css"), entry}, gomock.Any(),
	).Return("fp", nil)
	f.minifiers.EXPECT().ForBundle(gomock.Any()).Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(info domain.BuildInfo) error {
		assert.Equal(t, output, info.Output)
		assert.Equal(t, "fp", info.Fingerprint)
		return nil
	})

	err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{Output: output, CacheBuster: "none"})
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestMerge_Minifies(t *testing.T) {
	f := newFixture(t)
	dir, entry := stylesheets(t)
	output := filepath.Join(dir, "a.min.css")

	ctrl := gomock.NewController(t)
	minifier := mocks.NewMockMinifier(ctrl)
	minifier.EXPECT().Minify(gomock.Any(), output, output, domain.AssetTypeCSS).Return(nil)

	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.minifiers.EXPECT().ForBundle(gomock.Any()).DoAndReturn(func(b *domain.Bundle) (ports.Minifier, error) {
		assert.Equal(t, app.DefaultMinifier, b.Minifier)
		return minifier, nil
	})

	require.NoError(t, f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{}))
}

func TestMerge_RefusesExistingOutput(t *testing.T) {
	f := newFixture(t)
	f.freshBuilds()
	dir, entry := stylesheets(t)
	output := write(t, filepath.Join(dir, "a.min.css"), "keep")

	err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{})
	require.ErrorContains(t, err, domain.ErrOutputExists.Error())
	assert.Equal(t, "keep", read(t, output))
}

func TestMerge_ForceOverwrites(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.minifiers.EXPECT().ForBundle(gomock.Any()).Return(nil, nil)
	dir, entry := stylesheets(t)
	output := write(t, filepath.Join(dir, "a.min.css"), "stale")

	err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{Force: true, CacheBuster: "none"})
	require.NoError(t, err)
	assert.Contains(t, read(t, output), "p { color: red; }")
}

func TestMerge_UpToDate(t *testing.T) {
	f := newFixture(t)
	dir, entry := stylesheets(t)
	output := write(t, filepath.Join(dir, "a.min.css"), "built")

	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
	f.store.EXPECT().Get(output).Return(&domain.BuildInfo{Output: output, Fingerprint: "fp"}, nil)
	f.minifiers.EXPECT().ForBundle(gomock.Any()).Return(nil, nil)

	require.NoError(t, f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{}))
	assert.Equal(t, "built", read(t, output))
}

func TestMerge_RebustsChangedImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	minifiers := mocks.NewMockMinifierFactory(ctrl)
	minifiers.EXPECT().ForBundle(gomock.Any()).Return(nil, nil).AnyTimes()
	store, err := cas.NewStore(filepath.Join(t.TempDir(), cas.DefaultFileName))
	require.NoError(t, err)

	application := app.New(
		mocks.NewMockConfigLoader(ctrl),
		logger,
		fs.NewWalker(),
		fs.NewHasher(),
		store,
		mocks.NewMockLinter(ctrl),
		minifiers,
		telemetry.NewNoOp(),
		mocks.NewMockWatcher(ctrl),
		mocks.NewMockReloadServer(ctrl),
		&fakeHome{},
	)

	dir, entry := stylesheets(t)
	output := filepath.Join(dir, "a.min.css")
	opts := app.MergeOptions{CacheBuster: "soft"}

	require.NoError(t, application.Merge(context.Background(), []string{entry}, opts))
	assert.Contains(t, read(t, output), "url(img/logo.png?jcb=1234567890)")

	stamp := time.Unix(1300000000, 0)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "img", "logo.png"), stamp, stamp))

	require.NoError(t, application.Merge(context.Background(), []string{entry}, opts))
	assert.Contains(t, read(t, output), "url(img/logo.png?jcb=1300000000)")
}

func TestMerge_Verification(t *testing.T) {
	scripts := func(t *testing.T) (string, string) {
		t.Helper()
		dir := t.TempDir()
		entry := write(t, filepath.Join(dir, "app.js"), "/**\n * @depend lib.js\n */\nrun();\n")
		write(t, filepath.Join(dir, "lib.js"), "function run() {}\n")
		return dir, entry
	}
	problems := &domain.LintReport{File: "lib.js", Problems: []domain.LintProblem{{Message: "Missing semicolon."}}}

	t.Run("fails on problems", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
		dir, entry := scripts(t)
		f.linter.EXPECT().Check(gomock.Any(), filepath.Join(dir, "lib.js")).Return(problems, nil)
		f.linter.EXPECT().Check(gomock.Any(), entry).Return(&domain.LintReport{File: entry}, nil)

		err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{})
		require.ErrorContains(t, err, domain.ErrVerificationFailed.Error())
		assert.NoFileExists(t, filepath.Join(dir, "app.min.js"))
	})

	t.Run("ignores problems", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		f.logger.EXPECT().Warn(gomock.Any()).MinTimes(1)
		dir, entry := scripts(t)
		f.linter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(problems, nil).Times(2)

		err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{IgnoreProblems: true})
		require.NoError(t, err)
		merged := read(t, filepath.Join(dir, "app.min.js"))
		assert.Less(t, strings.Index(merged, "function run"), strings.Index(merged, "run();"))
	})

	t.Run("skipped", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		_, entry := scripts(t)

		err := f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{SkipVerification: true})
		require.NoError(t, err)
	})

	t.Run("linter missing", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		f.logger.EXPECT().Warn(gomock.Any())
		_, entry := scripts(t)
		f.linter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, domain.ErrLinterNotFound).AnyTimes()

		require.NoError(t, f.app.Merge(context.Background(), []string{entry}, app.MergeOptions{}))
	})
}

func TestBundleFor(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "src", "site.css")
	outDir := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(outDir, 0o750))

	t.Run("defaults", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.app.BundleFor([]string{entry}, app.MergeOptions{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "src", "site.min.css"), b.Output)
		assert.Equal(t, "site.min.css", b.Name)
		assert.Equal(t, domain.AssetTypeCSS, b.Type)
		assert.Equal(t, domain.CacheBusterSoft, b.CacheBuster)
		assert.Equal(t, domain.EmbedNone, b.EmbedImages)
		assert.Equal(t, domain.URLModeOriginal, b.URLMode)
		assert.Equal(t, app.DefaultMinifier, b.Minifier)
		assert.False(t, b.Verify)
	})

	t.Run("output directory", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.app.BundleFor([]string{entry}, app.MergeOptions{Output: outDir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "site.min.css"), b.Output)
	})

	t.Run("flags", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.app.BundleFor([]string{entry}, app.MergeOptions{
			Output:        filepath.Join(outDir, "all.js"),
			Hosts:         []string{"a.example.com", "b.example.com"},
			AllHostsLocal: true,
			AbsoluteURLs:  true,
			DocumentRoot:  dir,
			CacheBuster:   "hard",
			EmbedImages:   "data_uri",
			Compress:      []string{"gzip", "brotli"},
			Minifier:      "none",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AssetTypeJS, b.Type)
		assert.True(t, b.Verify)
		assert.Equal(t, b.Hosts, b.LocalHosts)
		assert.Equal(t, domain.URLModeAbsolute, b.URLMode)
		assert.Equal(t, dir, b.DocumentRoot)
		assert.Equal(t, domain.CacheBusterHard, b.CacheBuster)
		assert.Equal(t, domain.EmbedDataURI, b.EmbedImages)
		assert.Equal(t, []domain.Compression{domain.CompressionGzip, domain.CompressionBrotli}, b.Compress)
		assert.False(t, b.MinifierEnabled())
	})

	t.Run("type override", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.app.BundleFor([]string{entry}, app.MergeOptions{Output: filepath.Join(outDir, "bundle.txt"), Type: "css"})
		require.NoError(t, err)
		assert.Equal(t, domain.AssetTypeCSS, b.Type)
	})

	t.Run("unknown type defaults to js", func(t *testing.T) {
		f := newFixture(t)
		f.logger.EXPECT().Warn(gomock.Any())
		b, err := f.app.BundleFor([]string{entry}, app.MergeOptions{Output: filepath.Join(outDir, "bundle.txt")})
		require.NoError(t, err)
		assert.Equal(t, domain.AssetTypeJS, b.Type)
	})

	errs := []struct {
		name    string
		inputs  []string
		opts    app.MergeOptions
		wantErr error
	}{
		{name: "no inputs", wantErr: domain.ErrNoInputFiles},
		{name: "both url modes", inputs: []string{entry}, opts: app.MergeOptions{RelativeURLs: true, AbsoluteURLs: true}, wantErr: domain.ErrConflictingURLModes},
		{name: "bad buster", inputs: []string{entry}, opts: app.MergeOptions{CacheBuster: "medium"}, wantErr: domain.ErrUnknownCacheBuster},
		{name: "bad embed", inputs: []string{entry}, opts: app.MergeOptions{EmbedImages: "inline"}, wantErr: domain.ErrUnknownEmbedType},
		{name: "bad type", inputs: []string{entry}, opts: app.MergeOptions{Type: "html"}, wantErr: domain.ErrUnknownAssetType},
		{name: "bad compression", inputs: []string{entry}, opts: app.MergeOptions{Compress: []string{"zip"}}, wantErr: domain.ErrUnknownCompression},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.app.BundleFor(tt.inputs, tt.opts)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestList(t *testing.T) {
	f := newFixture(t)
	dir, entry := stylesheets(t)

	chains, err := f.app.List(context.Background(), []string{entry}, app.ListOptions{})
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, entry, chains[0].File)
	assert.Equal(t, []string{filepath.Join(dir, "b.css"), entry}, chains[0].Files)

	_, err = f.app.List(context.Background(), []string{filepath.Join(dir, "img", "logo.png")}, app.ListOptions{})
	assert.ErrorContains(t, err, domain.ErrUnknownAssetType.Error())

	_, err = f.app.List(context.Background(), nil, app.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNoInputFiles)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	f.linter.EXPECT().Check(gomock.Any(), "ok.js").Return(&domain.LintReport{File: "ok.js"}, nil)
	f.linter.EXPECT().Check(gomock.Any(), "bad.js").Return(&domain.LintReport{
		File:     "bad.js",
		Problems: []domain.LintProblem{{Message: "Unexpected token."}},
	}, nil)

	reports, err := f.app.Verify(context.Background(), []string{"ok.js", "bad.js"})
	require.ErrorContains(t, err, domain.ErrVerificationFailed.Error())
	require.Len(t, reports, 2)
	assert.True(t, reports[0].OK())
	assert.False(t, reports[1].OK())
}

func TestVerify_AllPass(t *testing.T) {
	f := newFixture(t)
	f.linter.EXPECT().Check(gomock.Any(), "ok.js").Return(&domain.LintReport{File: "ok.js"}, nil)

	reports, err := f.app.Verify(context.Background(), []string{"ok.js"})
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func bundle(name, entry, output string) domain.Bundle {
	return domain.Bundle{
		Name:        name,
		Inputs:      []string{entry},
		Output:      output,
		Type:        domain.AssetTypeCSS,
		CacheBuster: domain.CacheBusterNone,
		URLMode:     domain.URLModeOriginal,
		Minifier:    domain.MinifierNone,
	}
}

func TestBuild(t *testing.T) {
	dir, entry := stylesheets(t)
	script := write(t, filepath.Join(dir, "app.js"), "run();\n")
	site := bundle("site", entry, filepath.Join(dir, "public", "site.css"))
	scripts := bundle("scripts", script, filepath.Join(dir, "public", "app.js"))
	scripts.Type = domain.AssetTypeJS

	t.Run("all bundles", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		f.loader.EXPECT().Load(gomock.Any()).Return([]domain.Bundle{site, scripts}, nil)

		require.NoError(t, f.app.Build(context.Background(), nil, app.BuildOptions{}))
		assert.Contains(t, read(t, site.Output), "p { color: red; }")
		assert.Contains(t, read(t, scripts.Output), "run();")
	})

	t.Run("selected bundle", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		f.loader.EXPECT().Load(gomock.Any()).Return([]domain.Bundle{site, scripts}, nil)
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "public")))

		require.NoError(t, f.app.Build(context.Background(), []string{"scripts"}, app.BuildOptions{}))
		assert.FileExists(t, scripts.Output)
		assert.NoFileExists(t, site.Output)
	})

	t.Run("unknown bundle", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(gomock.Any()).Return([]domain.Bundle{site}, nil)

		err := f.app.Build(context.Background(), []string{"fonts"}, app.BuildOptions{})
		assert.ErrorContains(t, err, domain.ErrBundleNotFound.Error())
	})

	t.Run("config error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigNotFound)

		err := f.app.Build(context.Background(), nil, app.BuildOptions{})
		assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
	})

	t.Run("missing dependency", func(t *testing.T) {
		f := newFixture(t)
		f.freshBuilds()
		broken := write(t, filepath.Join(t.TempDir(), "broken.css"), "@import 'gone.css';\n")
		f.loader.EXPECT().Load(gomock.Any()).Return([]domain.Bundle{bundle("broken", broken, broken+".out")}, nil)

		err := f.app.Build(context.Background(), nil, app.BuildOptions{})
		assert.ErrorContains(t, err, domain.ErrDependencyNotFound.Error())
	})
}

func TestSetHome(t *testing.T) {
	f := newFixture(t)
	f.app.SetHome("")
	assert.Empty(t, f.home.dir)
	f.app.SetHome("/opt/squeeze")
	assert.Equal(t, "/opt/squeeze", f.home.dir)
}
