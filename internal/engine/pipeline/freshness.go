package pipeline

import (
	"context"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

// CheckStage stops the chain when the output exists and was built from the same
// inputs, assets and options as last time. Asset modification times count, since
// cache busters are derived from them. A forced check only fingerprints.
type CheckStage struct {
	hasher ports.Hasher
	store  ports.BuildInfoStore
	force  bool
}

// NewCheckStage creates a CheckStage.
func NewCheckStage(hasher ports.Hasher, store ports.BuildInfoStore, force bool) *CheckStage {
	return &CheckStage{hasher: hasher, store: store, force: force}
}

// Name implements Stage.
func (s *CheckStage) Name() string { return "up-to-date check" }

// Run implements Stage.
func (s *CheckStage) Run(ctx context.Context, a *Artifact) (bool, error) {
	files, options := a.Files, Options(a.Bundle)
	if len(a.Assets) > 0 {
		files = slices.Concat(a.Files, a.Assets)
		for _, file := range a.Assets {
			info, err := os.Stat(file)
			if err != nil {
				return false, zerr.With(zerr.Wrap(err, "failed to stat asset"), "path", file)
			}
			options["asset:"+file] = strconv.FormatInt(info.ModTime().Unix(), 10)
		}
	}

	fingerprint, err := s.hasher.ComputeFingerprint(files, options)
	if err != nil {
		return false, zerr.Wrap(err, "failed to fingerprint inputs")
	}
	a.Fingerprint = fingerprint

	if s.force {
		return true, nil
	}

	if _, err := os.Stat(a.Path); err != nil {
		return true, nil //nolint:nilerr // a missing output simply needs building
	}

	info, err := s.store.Get(a.Path)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if info == nil || info.Fingerprint != fingerprint {
		return true, nil
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Cached()
	}
	return false, nil
}

// RecordStage stores the fingerprint of a completed build.
type RecordStage struct {
	store ports.BuildInfoStore
	now   func() time.Time
}

// NewRecordStage creates a RecordStage.
func NewRecordStage(store ports.BuildInfoStore) *RecordStage {
	return &RecordStage{store: store, now: time.Now}
}

// Name implements Stage.
func (s *RecordStage) Name() string { return "record" }

// Run implements Stage.
func (s *RecordStage) Run(_ context.Context, a *Artifact) (bool, error) {
	if a.Fingerprint == "" {
		return true, nil
	}
	err := s.store.Put(domain.BuildInfo{
		Output:      a.Path,
		Fingerprint: a.Fingerprint,
		Inputs:      a.Files,
		Timestamp:   s.now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Options flattens the bundle settings that shape the artifact, for fingerprinting.
func Options(b *domain.Bundle) map[string]string {
	compress := make([]string, len(b.Compress))
	for i, c := range b.Compress {
		compress[i] = string(c)
	}
	return map[string]string{
		"type":          string(b.Type),
		"document_root": b.DocumentRoot,
		"hosts":         strings.Join(b.Hosts, ","),
		"local_hosts":   strings.Join(b.LocalHosts, ","),
		"cache_buster":  string(b.CacheBuster) + ":" + b.CacheBusterParameter,
		"embed_images":  string(b.EmbedImages),
		"url_mode":      string(b.URLMode),
		"minifier":      b.Minifier + ":" + b.MinifierPath + ":" + strings.Join(b.MinifierArgs, " "),
		"compress":      strings.Join(compress, ","),
	}
}
