package app

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/squeeze/internal/engine/compress"
	"go.trai.ch/squeeze/internal/engine/embed"
	"go.trai.ch/squeeze/internal/engine/merger"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/squeeze/internal/engine/resolver"
	"go.trai.ch/squeeze/internal/engine/rewrite"
	"go.trai.ch/zerr"
)

// produce builds one bundle. guard refuses to overwrite an existing output
// unless force is set. It returns the artifact, whose Files hold the merged
// closure even when the output was already up to date.
func (a *App) produce(ctx context.Context, bundle domain.Bundle, force, guard bool) (*pipeline.Artifact, error) {
	opts := []merger.Option{
		merger.WithResolver(resolver.New(resolver.RuleFor(bundle.Type), a.walker, bundle.DocumentRoot)),
	}
	if bundle.IsCSS() {
		opts = append(opts, merger.WithFilter(merger.NewStylesheetFilter(bundle.Output)))
	}
	m := merger.New(opts...)
	if err := m.Append(bundle.Inputs...); err != nil {
		return nil, err
	}

	chain, err := a.chain(&bundle, m, force, guard)
	if err != nil {
		return nil, err
	}

	artifact := &pipeline.Artifact{Bundle: &bundle, Path: bundle.Output, Files: m.Files()}
	if artifact.Assets, err = assets(&bundle, artifact.Files); err != nil {
		return nil, err
	}
	done, err := chain.Run(ctx, artifact)
	if err != nil {
		return artifact, err
	}
	if done {
		a.logger.Info(fmt.Sprintf("produced %s from %d files", artifact.Path, len(artifact.Files)))
	} else {
		a.logger.Info(fmt.Sprintf("%s is up to date", artifact.Path))
	}
	return artifact, nil
}

// chain assembles the stages for bundle: up-to-date check, overwrite guard,
// verification, merge, image embedding, URL rewriting, minification,
// precompression and recording of the build.
func (a *App) chain(bundle *domain.Bundle, m *merger.Merger, force, guard bool) (*pipeline.Pipeline, error) {
	stages := []pipeline.Stage{pipeline.NewCheckStage(a.hasher, a.store, force)}
	if guard && !force {
		stages = append(stages, overwriteGuard{store: a.store})
	}
	if bundle.Verify && bundle.Type == domain.AssetTypeJS {
		stages = append(stages, &verifyStage{app: a})
	}
	stages = append(stages, merger.NewStage(m))

	if bundle.IsCSS() {
		if embeds(bundle) {
			stages = append(stages, embed.New(bundle.EmbedImages, a.logger,
				embed.WithDocumentRoot(bundle.DocumentRoot),
				embed.WithHosts(bundle.Hosts...),
			))
		}
		if rewrites(bundle) {
			stages = append(stages, rewrite.New(a.logger,
				rewrite.WithCacheBuster(bundle.CacheBuster, bundle.CacheBusterParameter),
				rewrite.WithURLMode(bundle.URLMode),
				rewrite.WithDocumentRoot(bundle.DocumentRoot),
				rewrite.WithHosts(bundle.Hosts...),
				rewrite.WithLocalHosts(bundle.LocalHosts...),
			))
		}
	}

	minifier, err := a.minifiers.ForBundle(bundle)
	if err != nil {
		return nil, err
	}
	if minifier != nil {
		stages = append(stages, pipeline.NewMinifyStage(minifier))
	}

	stages = append(stages,
		compress.NewStage(bundle.Compress...),
		pipeline.NewRecordStage(a.store),
	)
	return pipeline.New(a.telemetry, stages...), nil
}

// assets returns the images a CSS bundle busts or embeds, so that changing one
// makes the bundle stale.
func assets(b *domain.Bundle, files []string) ([]string, error) {
	if !b.IsCSS() || (!rewrites(b) && !embeds(b)) {
		return nil, nil
	}
	hosts := slices.Concat(b.LocalHosts, b.Hosts)
	return rewrite.Assets(files, b.DocumentRoot, hosts...)
}

func embeds(b *domain.Bundle) bool {
	return b.EmbedImages != "" && b.EmbedImages != domain.EmbedNone
}

func rewrites(b *domain.Bundle) bool {
	busting := b.CacheBuster != "" && b.CacheBuster != domain.CacheBusterNone
	return busting || (b.URLMode != "" && b.URLMode != domain.URLModeOriginal)
}

// overwriteGuard stops a merge from replacing an existing output that has no
// build record, i.e. one squeeze did not produce.
type overwriteGuard struct {
	store ports.BuildInfoStore
}

func (overwriteGuard) Name() string { return "overwrite check" }

func (g overwriteGuard) Run(_ context.Context, a *pipeline.Artifact) (bool, error) {
	if _, err := os.Stat(a.Path); err != nil {
		return true, nil //nolint:nilerr // nothing to overwrite
	}
	info, err := g.store.Get(a.Path)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if info == nil {
		return false, zerr.With(domain.ErrOutputExists, "output", a.Path)
	}
	return true, nil
}

// verifyStage lints the merged closure of a script bundle.
type verifyStage struct {
	app *App
}

func (s *verifyStage) Name() string { return "verify" }

func (s *verifyStage) Run(ctx context.Context, a *pipeline.Artifact) (bool, error) {
	reports, err := s.app.lint(ctx, a.Files)
	if isLinterMissing(err) {
		s.app.warnf("skipping verification of %s: %v", a.Path, err)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	failed := failedFiles(reports)
	if len(failed) == 0 {
		return true, nil
	}
	for i := range reports {
		for _, p := range reports[i].Problems {
			s.app.warnf("%s: %s", reports[i].File, p.Message)
		}
	}
	if a.Bundle.IgnoreProblems {
		s.app.warnf("problems were detected during verification of %s, ignoring", strings.Join(failed, ", "))
		return true, nil
	}
	return false, zerr.With(domain.ErrVerificationFailed, "files", strings.Join(failed, ", "))
}
