// Package merger concatenates a resolved file list into a single artifact.
package merger

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// DependencyResolver expands a file into its ordered dependency closure.
type DependencyResolver interface {
	Resolve(file string, accept func(string) bool) ([]string, error)
}

// ContentFilter transforms the content of one file before it is merged.
type ContentFilter interface {
	Filter(file string, content []byte) ([]byte, error)
}

// Merger accumulates an ordered, duplicate-free file list and writes the
// concatenation of its files.
type Merger struct {
	resolver DependencyResolver
	filter   ContentFilter
	files    domain.FileList
}

// Option configures a Merger.
type Option func(*Merger)

// WithResolver expands every appended file into its dependency closure.
func WithResolver(r DependencyResolver) Option {
	return func(m *Merger) {
		m.resolver = r
	}
}

// WithFilter transforms file contents while merging.
func WithFilter(f ContentFilter) Option {
	return func(m *Merger) {
		m.filter = f
	}
}

// New creates a Merger.
func New(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append adds files in order. With a resolver, each file brings its closure,
// minus files already present; without one, files are added as given.
func (m *Merger) Append(files ...string) error {
	for _, file := range files {
		if m.files.Contains(file) {
			continue
		}
		if m.resolver == nil {
			m.files.Add(file)
			continue
		}

		abs, err := filepath.Abs(file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrDependencyNotFound.Error()), "file", file)
		}
		closure, err := m.resolver.Resolve(abs, func(f string) bool {
			return !m.files.Contains(f)
		})
		if err != nil {
			return err
		}
		m.files.Add(closure...)
	}
	return nil
}

// Files returns the merged files in order.
func (m *Merger) Files() []string {
	return m.files.Paths()
}

// WriteTo writes each file, filtered, followed by a newline.
func (m *Merger) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, file := range m.files.Paths() {
		content, err := os.ReadFile(file) //nolint:gosec // merged files come from the resolved closure
		if err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrDependencyNotFound.Error()), "file", file)
		}
		if m.filter != nil {
			if content, err = m.filter.Filter(file, content); err != nil {
				return written, err
			}
		}
		n, err := w.Write(append(content, '\n'))
		written += int64(n)
		if err != nil {
			return written, zerr.Wrap(err, "failed to write merged content")
		}
	}
	return written, nil
}

// Save writes the merged content to output, creating its directory.
func (m *Merger) Save(output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", output)
	}
	f, err := os.Create(output) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output"), "path", output)
	}

	bw := bufio.NewWriter(f)
	if _, err := m.WriteTo(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to write output"), "path", output)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write output"), "path", output)
	}
	return nil
}

// Stage saves the merged content as the first step of a pipeline.
type Stage struct {
	merger *Merger
}

// NewStage creates a Stage for m.
func NewStage(m *Merger) *Stage {
	return &Stage{merger: m}
}

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return "merge" }

// Run implements pipeline.Stage.
func (s *Stage) Run(_ context.Context, a *pipeline.Artifact) (bool, error) {
	if err := s.merger.Save(a.Path); err != nil {
		return false, err
	}
	return true, nil
}
