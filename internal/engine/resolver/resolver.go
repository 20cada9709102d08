// Package resolver expands an entry file into the ordered closure of the files it
// declares as dependencies.
package resolver

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	absolutePattern = regexp.MustCompile(`^(/|[a-z]+:)`)
	hostPattern     = regexp.MustCompile(`^[a-z]+://[^/]+/`)
)

// Resolver resolves dependency declarations of a single dialect.
type Resolver struct {
	rule         DialectRule
	walker       ports.Walker
	documentRoot string
}

// New creates a Resolver for rule. documentRoot may be empty, in which case
// absolute declarations fail to resolve.
func New(rule DialectRule, walker ports.Walker, documentRoot string) *Resolver {
	return &Resolver{
		rule:         rule,
		walker:       walker,
		documentRoot: documentRoot,
	}
}

// AcceptAll is the default inclusion predicate.
func AcceptAll(string) bool { return true }

// Resolve returns the closure of file: every transitive dependency before the
// files that need it, each exactly once, file itself last. A file is only
// included, and only descended into, when accept returns true for it.
//
// A dependency that is still being resolved further up the chain is skipped,
// which breaks cycles of any length.
func (r *Resolver) Resolve(file string, accept func(string) bool) ([]string, error) {
	if accept == nil {
		accept = AcceptAll
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDependencyNotFound.Error()), "file", file)
	}

	w := walk{
		Resolver:   r,
		accept:     accept,
		inProgress: make(map[string]struct{}),
	}
	if err := w.resolve(abs); err != nil {
		return nil, err
	}
	return w.files.Paths(), nil
}

// ResolvePath turns a declared path into an absolute file system path. Relative
// paths resolve against the directory of reference. Absolute paths and URLs
// resolve against the document root, with scheme and host dropped.
func (r *Resolver) ResolvePath(path, reference string) (string, error) {
	if absolutePattern.MatchString(path) {
		if r.documentRoot == "" {
			return "", zerr.With(zerr.With(domain.ErrNoDocumentRoot, "path", path), "file", reference)
		}
		path = hostPattern.ReplaceAllString(path, "")
		return filepath.Abs(filepath.Join(r.documentRoot, filepath.FromSlash(path)))
	}
	return filepath.Abs(filepath.Join(filepath.Dir(reference), filepath.FromSlash(path)))
}

type walk struct {
	*Resolver
	accept     func(string) bool
	inProgress map[string]struct{}
	files      domain.FileList
}

func (w *walk) resolve(file string) error {
	w.inProgress[file] = struct{}{}
	defer delete(w.inProgress, file)

	declarations, err := w.scan(file)
	if err != nil {
		return err
	}

	for _, d := range declarations {
		target, err := w.ResolvePath(d.Path, file)
		if err != nil {
			return err
		}
		for _, dep := range w.expand(target) {
			if w.files.Contains(dep) || !w.accept(dep) {
				continue
			}
			if _, busy := w.inProgress[dep]; busy {
				continue
			}
			if err := w.resolve(dep); err != nil {
				return err
			}
		}
	}

	if !w.files.Contains(file) && w.accept(file) {
		w.files.Add(file)
	}
	return nil
}

// scan collects the declarations of file until the dialect rule stops it.
func (w *walk) scan(file string) ([]domain.Declaration, error) {
	f, err := os.Open(file) //nolint:gosec // paths come from the user's own sources
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDependencyNotFound.Error()), "file", file)
	}
	defer func() { _ = f.Close() }()

	var (
		declarations []domain.Declaration
		cur          Cursor
		reader       = bufio.NewReader(f)
	)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			cur.Line++
			res := w.rule.Parse(strings.TrimRight(line, "\r\n"), cur)
			cur.Previous = res.Declaration
			if res.Declaration != nil {
				cur.Found++
				declarations = append(declarations, *res.Declaration)
			}
			if res.Stop {
				break
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, zerr.With(zerr.Wrap(readErr, domain.ErrDependencyNotFound.Error()), "file", file)
		}
	}
	return declarations, nil
}

// expand returns the files a resolved target stands for: the target itself, or
// every file with the dialect's extension below it when it is a directory.
func (w *walk) expand(target string) []string {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return []string{target}
	}
	var files []string
	for file := range w.walker.WalkFiles(target, nil) {
		if filepath.Ext(file) == w.rule.Extension() {
			files = append(files, file)
		}
	}
	return files
}
