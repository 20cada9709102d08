package merger

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/squeeze/internal/engine/resolver"
)

var (
	urlPattern      = regexp.MustCompile(`url\([\s"']*([^\)"'\s]*)[\s"']*\)`)
	externalPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*:|/|#)`)
)

// StylesheetFilter strips @import declarations, whose targets are merged already,
// and rebases relative url() references onto the directory of the output file.
type StylesheetFilter struct {
	outputDir string
}

// NewStylesheetFilter creates a StylesheetFilter for an artifact written to output.
func NewStylesheetFilter(output string) *StylesheetFilter {
	return &StylesheetFilter{outputDir: filepath.Dir(output)}
}

// Filter implements ContentFilter.
func (f *StylesheetFilter) Filter(file string, content []byte) ([]byte, error) {
	css := resolver.CSS{}.StripImports(string(content))

	dir := filepath.Dir(file)
	if dir == f.outputDir {
		return []byte(css), nil
	}

	css = urlPattern.ReplaceAllStringFunc(css, func(match string) string {
		ref := urlPattern.FindStringSubmatch(match)[1]
		if ref == "" || externalPattern.MatchString(ref) {
			return match
		}

		name, query, hasQuery := strings.Cut(ref, "?")
		rel, err := filepath.Rel(f.outputDir, filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return match
		}
		rebased := filepath.ToSlash(rel)
		if hasQuery {
			rebased += "?" + query
		}
		return strings.Replace(match, ref, rebased, 1)
	})
	return []byte(css), nil
}
