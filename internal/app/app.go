// Package app implements the use cases of squeeze.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/squeeze/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// HomeSetter overrides the tool home directory.
type HomeSetter interface {
	SetOverride(dir string)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	walker       ports.Walker
	hasher       ports.Hasher
	store        ports.BuildInfoStore
	linter       ports.Linter
	minifiers    ports.MinifierFactory
	telemetry    ports.Telemetry
	watcher      ports.Watcher
	reload       ports.ReloadServer
	home         HomeSetter

	debounce time.Duration
	getwd    func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	walker ports.Walker,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	linter ports.Linter,
	minifiers ports.MinifierFactory,
	telemetry ports.Telemetry,
	watcher ports.Watcher,
	reload ports.ReloadServer,
	home HomeSetter,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		walker:       walker,
		hasher:       hasher,
		store:        store,
		linter:       linter,
		minifiers:    minifiers,
		telemetry:    telemetry,
		watcher:      watcher,
		reload:       reload,
		home:         home,
		debounce:     defaultDebounceWindow,
		getwd:        os.Getwd,
	}
}

// WithDebounceWindow sets how long watch mode waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetHome overrides the tool home directory used to locate external tools and
// the build info store.
func (a *App) SetHome(dir string) {
	if dir == "" || a.home == nil {
		return
	}
	a.home.SetOverride(dir)
}

// Merge resolves, merges and post-processes inputs into one artifact.
func (a *App) Merge(ctx context.Context, inputs []string, opts MergeOptions) error {
	bundle, err := a.bundleFor(inputs, opts)
	if err != nil {
		return err
	}
	_, err = a.produce(ctx, bundle, opts.Force, true)
	return err
}

// Chain is the dependency closure of one file.
type Chain struct {
	File  string
	Files []string
}

// ListOptions configuration for the List method.
type ListOptions struct {
	// Type overrides the type guessed from each file's extension.
	Type         string
	DocumentRoot string
}

// List returns the dependency chain of every file, dependencies first.
func (a *App) List(_ context.Context, files []string, opts ListOptions) ([]Chain, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoInputFiles
	}

	documentRoot := opts.DocumentRoot
	if documentRoot != "" {
		var err error
		if documentRoot, err = filepath.Abs(documentRoot); err != nil {
			return nil, zerr.Wrap(err, "failed to resolve document root")
		}
	}

	chains := make([]Chain, 0, len(files))
	for _, file := range files {
		typ, err := listType(file, opts.Type)
		if err != nil {
			return nil, err
		}
		closure, err := resolver.New(resolver.RuleFor(typ), a.walker, documentRoot).Resolve(file, nil)
		if err != nil {
			return nil, err
		}
		chains = append(chains, Chain{File: file, Files: closure})
	}
	return chains, nil
}

func listType(file, override string) (domain.AssetType, error) {
	if override != "" {
		return domain.ParseAssetType(override)
	}
	return domain.AssetTypeOf(file)
}

// Verify lints files concurrently. It returns the report of every file, in
// order, and ErrVerificationFailed when any of them has problems.
func (a *App) Verify(ctx context.Context, files []string) ([]domain.LintReport, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoInputFiles
	}

	reports, err := a.lint(ctx, files)
	if err != nil {
		return nil, err
	}
	if failed := failedFiles(reports); len(failed) > 0 {
		return reports, zerr.With(domain.ErrVerificationFailed, "files", strings.Join(failed, ", "))
	}
	return reports, nil
}

func (a *App) lint(ctx context.Context, files []string) ([]domain.LintReport, error) {
	reports := make([]domain.LintReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			report, err := a.linter.Check(ctx, file)
			if err != nil {
				return err
			}
			reports[i] = *report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func failedFiles(reports []domain.LintReport) []string {
	var failed []string
	for i := range reports {
		if !reports[i].OK() {
			failed = append(failed, reports[i].File)
		}
	}
	return failed
}

// BuildOptions configuration for the Build and Watch methods.
type BuildOptions struct {
	// Force rebuilds bundles even when they are up to date.
	Force bool
	// LiveReload is the address of the live reload server started by Watch.
	// Empty disables it.
	LiveReload string
}

// Build produces the bundles declared in squeeze.yaml. Without names every
// bundle is built. Independent bundles are built concurrently.
func (a *App) Build(ctx context.Context, names []string, opts BuildOptions) error {
	bundles, err := a.loadBundles(names)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, bundle := range bundles {
		g.Go(func() error {
			if _, err := a.produce(ctx, bundle, opts.Force, false); err != nil {
				return zerr.With(err, "bundle", bundle.Name)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *App) loadBundles(names []string) ([]domain.Bundle, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}
	bundles, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if len(names) == 0 {
		return bundles, nil
	}

	selected := make([]domain.Bundle, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(bundles, func(b domain.Bundle) bool { return b.Name == name })
		if i < 0 {
			return nil, zerr.With(domain.ErrBundleNotFound, "bundle", name)
		}
		selected = append(selected, bundles[i])
	}
	return selected, nil
}

func (a *App) warnf(format string, args ...any) {
	a.logger.Warn(fmt.Sprintf(format, args...))
}

func isLinterMissing(err error) bool {
	return errors.Is(err, domain.ErrLinterNotFound)
}
