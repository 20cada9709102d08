// Package embed inlines flagged images into stylesheets.
//
// Only references ending in ?embed=true that point at png, gif or jpeg files are
// considered. A reference that occurs more than once is never embedded, and an
// encoding larger than the size limit is left as a plain URL.
package embed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/squeeze/internal/engine/asset"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

var (
	urlPattern   = regexp.MustCompile(`url\([\s"']*([^\)"'\s]*)[\s"']*\)`)
	imagePattern = regexp.MustCompile(`(?i)\.(png|gif|jpg|jpeg)\?embed=true$`)
)

const mhtmlBoundary = "_SQUEEZE_MHTML_SEPARATOR_"

var mediaTypes = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// Embedder rewrites flagged image references of a stylesheet.
type Embedder struct {
	typ          domain.EmbedType
	documentRoot string
	hosts        []string
	sizeLimit    int
	logger       ports.Logger
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithDocumentRoot sets the directory root-relative references resolve against.
func WithDocumentRoot(root string) Option {
	return func(e *Embedder) {
		e.documentRoot = root
	}
}

// WithHosts sets the hosts served from the document root.
func WithHosts(hosts ...string) Option {
	return func(e *Embedder) {
		e.hosts = hosts
	}
}

// WithSizeLimit overrides domain.EmbedSizeLimit.
func WithSizeLimit(limit int) Option {
	return func(e *Embedder) {
		e.sizeLimit = limit
	}
}

// New creates an Embedder of the given type.
func New(typ domain.EmbedType, logger ports.Logger, opts ...Option) *Embedder {
	e := &Embedder{
		typ:       typ,
		sizeLimit: domain.EmbedSizeLimit,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements pipeline.Stage.
func (e *Embedder) Name() string { return "embed images" }

// Run implements pipeline.Stage. The artifact is rewritten in place.
func (e *Embedder) Run(_ context.Context, a *pipeline.Artifact) (bool, error) {
	if e.typ != domain.EmbedDataURI && e.typ != domain.EmbedMHTML {
		return true, nil
	}
	if err := e.Save(a.Path, ""); err != nil {
		return false, err
	}
	return true, nil
}

// Save embeds the images referenced by file and writes the result to output,
// or back to file when output is empty.
func (e *Embedder) Save(file, output string) error {
	content, err := os.ReadFile(file) //nolint:gosec // artifact path is chosen by the user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read stylesheet"), "path", file)
	}
	if output == "" {
		output = file
	}

	rewritten, err := e.Embed(string(content), file, output)
	if err != nil {
		return err
	}

	//nolint:gosec // stylesheets are public artifacts
	if err := os.WriteFile(output, []byte(rewritten), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write stylesheet"), "path", output)
	}
	return nil
}

// candidate is one embeddable reference and its encoded payload.
type candidate struct {
	ref     string
	disk    string
	mime    string
	payload []byte
}

// Embed rewrites the flagged references in css, which lives at file and will be
// served from output.
func (e *Embedder) Embed(css, file, output string) (string, error) {
	resolver := asset.NewResolver(
		asset.WithBase(filepath.Dir(file)),
		asset.WithDocumentRoot(e.documentRoot),
		asset.WithHosts(e.hosts...),
	)

	refs, duplicates := e.scan(css, resolver)
	if len(duplicates) > 0 {
		e.logger.Warn(fmt.Sprintf("duplicate image urls detected, these images will not be embedded: %s",
			strings.Join(duplicates, ", ")))
	}

	var candidates []candidate
	for _, ref := range refs {
		c, ok := e.load(ref, resolver)
		if ok {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return css, nil
	}

	if e.typ == domain.EmbedMHTML {
		return e.embedMHTML(css, output, candidates)
	}
	return e.embedDataURIs(css, candidates), nil
}

// scan returns the flagged references in order of first appearance, without
// the ones that resolve to the same file more than once, and the display names
// of those duplicates.
func (e *Embedder) scan(css string, resolver *asset.Resolver) ([]string, []string) {
	type seen struct {
		ref string
		key string
	}
	counts := make(map[string]int)
	var order []seen
	for _, m := range urlPattern.FindAllStringSubmatch(css, -1) {
		ref := m[1]
		if !strings.HasSuffix(ref, domain.EmbedMarker) {
			continue
		}
		key := ref
		if filename, err := resolver.Resolve(ref).Filename(); err == nil {
			key = filename
		}
		if counts[key] == 0 {
			order = append(order, seen{ref: ref, key: key})
		}
		counts[key]++
	}

	var refs, duplicates []string
	for _, s := range order {
		if counts[s.key] > 1 {
			duplicates = append(duplicates, strings.TrimSuffix(s.ref, domain.EmbedMarker))
			continue
		}
		refs = append(refs, s.ref)
	}
	return refs, duplicates
}

// load reads an eligible image and checks it against the size limit.
func (e *Embedder) load(ref string, resolver *asset.Resolver) (candidate, bool) {
	p := resolver.Resolve(ref)
	filename, err := p.Filename()
	if err != nil {
		e.logger.Warn(fmt.Sprintf("unable to resolve %s, skipping image embedding: %v", ref, err))
		return candidate{}, false
	}
	m := imagePattern.FindStringSubmatch(filename)
	if m == nil {
		return candidate{}, false
	}

	disk, _ := p.DiskPath()
	payload, err := os.ReadFile(disk) //nolint:gosec // referenced from the stylesheet being built
	if err != nil {
		e.logger.Warn(fmt.Sprintf("unable to locate file %s, skipping image embedding", disk))
		return candidate{}, false
	}

	c := candidate{ref: ref, disk: disk, mime: mediaTypes[strings.ToLower(m[1])], payload: payload}
	if size := e.encodedSize(c); size > e.sizeLimit {
		e.logger.Warn(fmt.Sprintf("the encoded image %s is %d bytes, exceeding %d; it will not be embedded",
			strings.TrimSuffix(ref, domain.EmbedMarker), size, e.sizeLimit))
		return candidate{}, false
	}
	return c, true
}

func (e *Embedder) encodedSize(c candidate) int {
	if e.typ == domain.EmbedMHTML {
		return len(base64Lines(c.payload))
	}
	return len(DataURI(c.payload, c.mime))
}

func (e *Embedder) embedDataURIs(css string, candidates []candidate) string {
	uris := make(map[string]string, len(candidates))
	for _, c := range candidates {
		uris[c.ref] = DataURI(c.payload, c.mime)
	}
	return replaceRefs(css, uris)
}

// embedMHTML points each reference into a multipart block appended to the
// stylesheet. The block is addressed by the absolute URL of output.
func (e *Embedder) embedMHTML(css, output string, candidates []candidate) (string, error) {
	host := ""
	if len(e.hosts) > 0 {
		host = e.hosts[0]
	}
	stylesheet := asset.NewPath(filepath.Base(output),
		asset.WithBase(filepath.Dir(output)),
		asset.WithDocumentRoot(e.documentRoot),
	)
	location, err := stylesheet.AbsolutePath(asset.WithHost(host))
	if err != nil {
		e.logger.Warn(fmt.Sprintf("mhtml embedding needs the stylesheet url, skipping image embedding: %v", err))
		return css, nil
	}

	refs := make(map[string]string, len(candidates))
	var block strings.Builder
	block.WriteString("\n/*\nContent-Type: multipart/related; boundary=\"" + mhtmlBoundary + "\"\n")
	for i, c := range candidates {
		id := fmt.Sprintf("img%d", i)
		refs[c.ref] = "mhtml:" + location + "!" + id
		block.WriteString("\n--" + mhtmlBoundary + "\n")
		block.WriteString("Content-Location: " + id + "\n")
		block.WriteString("Content-Type: " + c.mime + "\n")
		block.WriteString("Content-Transfer-Encoding: base64\n\n")
		block.WriteString(base64Lines(c.payload))
	}
	block.WriteString("\n--" + mhtmlBoundary + "--\n*/\n")

	return replaceRefs(css, refs) + block.String(), nil
}

// replaceRefs substitutes the reference inside every url() whose reference is a key of refs.
func replaceRefs(css string, refs map[string]string) string {
	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return urlPattern.ReplaceAllStringFunc(css, func(match string) string {
		ref := urlPattern.FindStringSubmatch(match)[1]
		if _, ok := slices.BinarySearch(keys, ref); !ok {
			return match
		}
		return strings.Replace(match, ref, refs[ref], 1)
	})
}
