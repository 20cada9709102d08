package resolver

import (
	"regexp"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
)

// Cursor is the scanning state handed to a DialectRule for each line.
type Cursor struct {
	// Line is the 1-based number of the line being parsed.
	Line int
	// Previous is the declaration found on the previous line, if any.
	Previous *domain.Declaration
	// Found counts the declarations found so far in the file.
	Found int
}

// Result is the outcome of parsing one line.
type Result struct {
	// Declaration is set when the line declares a dependency.
	Declaration *domain.Declaration
	// Stop ends scanning of the file after this line.
	Stop bool
}

// Continue moves on to the next line.
func Continue() Result { return Result{} }

// Done ends scanning of the file.
func Done() Result { return Result{Stop: true} }

// Found reports a declaration and keeps scanning.
func Found(d domain.Declaration) Result { return Result{Declaration: &d} }

// DialectRule recognizes dependency declarations of one source dialect.
// Implementations hold no mutable state and may be shared between resolvers.
type DialectRule interface {
	// Parse inspects a single line.
	Parse(line string, cur Cursor) Result
	// Extension is the file extension, with leading dot, collected when a
	// declaration names a directory.
	Extension() string
}

// importPattern matches @import 'x', @import "x", @import url(x), @import url('x')
// and @import url("x"), capturing the path and an optional query per quoting style.
var importPattern = regexp.MustCompile(`(?i)^\s*@import(?:\s+url\(\s*|\s+)` +
	`(?:"([^?"\s]+)(\?[^"]*)?"|'([^?'\s]+)(\?[^']*)?'|([^?'"\)\s]+)(\?[^'"\)\s;]*)?)` +
	`\s*\)?[^;]*;?`)

// ruleStart matches the start of a style rule, after which no imports may follow.
var ruleStart = regexp.MustCompile(`^[.#a-zA-Z:]`)

// CSS recognizes @import declarations at the top of a stylesheet.
type CSS struct{}

// Parse implements DialectRule.
func (CSS) Parse(line string, _ Cursor) Result {
	if m := importPattern.FindStringSubmatch(line); m != nil {
		for i := 1; i < len(m); i += 2 {
			if m[i] != "" {
				return Found(domain.Declaration{Path: m[i], Query: m[i+1]})
			}
		}
	}
	if ruleStart.MatchString(line) {
		return Done()
	}
	return Continue()
}

// Extension implements DialectRule.
func (CSS) Extension() string { return ".css" }

// StripImports removes every @import declaration from content.
func (CSS) StripImports(content string) string {
	return importLinePattern.ReplaceAllString(content, "")
}

var importLinePattern = regexp.MustCompile(`(?im)^[ \t]*@import(?:\s+url\(\s*|\s+)(?:"[^"\n]*"|'[^'\n]*'|[^'"\)\s]+)[ \t]*\)?[^;\n]*;?`)

var dependPattern = regexp.MustCompile(`@depends?\s+([^\s'";]+)`)

// JavaScript recognizes @depend and @depends annotations in the first comment block.
type JavaScript struct{}

// Parse implements DialectRule.
func (JavaScript) Parse(line string, _ Cursor) Result {
	closes := strings.Contains(line, "*/")
	if m := dependPattern.FindStringSubmatch(line); m != nil {
		return Result{Declaration: &domain.Declaration{Path: m[1]}, Stop: closes}
	}
	if closes {
		return Done()
	}
	return Continue()
}

// Extension implements DialectRule.
func (JavaScript) Extension() string { return ".js" }

// RuleFor returns the dialect rule for an asset type.
func RuleFor(typ domain.AssetType) DialectRule {
	if typ == domain.AssetTypeCSS {
		return CSS{}
	}
	return JavaScript{}
}
