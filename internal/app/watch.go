package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/squeeze/internal/adapters/watcher" //nolint:depguard // debouncing is shared with the watcher adapter
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultDebounceWindow = watcher.DefaultDebounceWindow

// Watch builds the selected bundles, then rebuilds a bundle whenever a file
// it is merged from changes. With opts.LiveReload set, every rebuild is also
// pushed to connected browsers. It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, names []string, opts BuildOptions) error {
	bundles, err := a.loadBundles(names)
	if err != nil {
		return err
	}
	if len(bundles) == 0 {
		a.logger.Warn("no bundles to watch")
		return nil
	}

	closures := make([][]string, len(bundles))
	for i := range bundles {
		closures[i], _ = a.rebuild(ctx, bundles[i], nil, opts.Force)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	if opts.LiveReload != "" {
		go func() {
			serveErr <- a.reload.Serve(ctx, opts.LiveReload)
		}()
	}

	root := watchRoot(bundles, closures)
	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", root)
	}
	defer func() { _ = a.watcher.Stop() }()

	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case paths := <-batches:
			for i := range bundles {
				if !affected(&bundles[i], closures[i], bundles, paths) {
					continue
				}
				var event domain.Rebuild
				closures[i], event = a.rebuild(ctx, bundles[i], closures[i], false)
				if opts.LiveReload != "" {
					a.reload.Notify(event)
				}
			}
		}
	}
}

// rebuild produces bundle and returns its new closure, the referenced assets
// included. Failures are logged and the previous closure is kept, so the bundle
// is retried on the next change.
func (a *App) rebuild(
	ctx context.Context, bundle domain.Bundle, previous []string, force bool,
) ([]string, domain.Rebuild) {
	start := time.Now()
	artifact, err := a.produce(ctx, bundle, force, false)
	event := domain.Rebuild{
		Bundle:   bundle.Name,
		Output:   bundle.Output,
		Type:     bundle.Type,
		URL:      artifactURL(bundle),
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		a.logger.Error(zerr.With(err, "bundle", bundle.Name))
	}
	switch {
	case artifact != nil:
		return slices.Concat(artifact.Files, artifact.Assets), event
	case previous != nil:
		return previous, event
	default:
		return bundle.Inputs, event
	}
}

// artifactURL returns the output path as seen by a browser: relative to the
// document root when the output lies below it, otherwise its base name.
func artifactURL(bundle domain.Bundle) string {
	if root := bundle.DocumentRoot; root != "" && within(root, bundle.Output) {
		if rel, err := filepath.Rel(root, bundle.Output); err == nil {
			return "/" + filepath.ToSlash(rel)
		}
	}
	return filepath.Base(bundle.Output)
}

// affected reports whether a change to any of paths requires rebuilding bundle:
// a file of its closure changed, or a new file of its type may now be imported.
func affected(bundle *domain.Bundle, closure []string, all []domain.Bundle, paths []string) bool {
	for _, p := range paths {
		if slices.Contains(closure, p) {
			return true
		}
		if filepath.Ext(p) == bundle.Type.Extension() && !isOutput(all, p) {
			return true
		}
	}
	return false
}

func isOutput(bundles []domain.Bundle, path string) bool {
	return slices.ContainsFunc(bundles, func(b domain.Bundle) bool { return b.Output == path })
}

// watchRoot returns the deepest directory containing every file of every closure.
func watchRoot(bundles []domain.Bundle, closures [][]string) string {
	var files []string
	for i := range bundles {
		files = append(files, bundles[i].Inputs...)
		files = append(files, closures[i]...)
	}
	return commonDir(files)
}

func commonDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	dir := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		for !within(dir, p) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return dir
			}
			dir = parent
		}
	}
	return dir
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
