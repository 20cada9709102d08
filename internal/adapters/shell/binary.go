package shell

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/squeeze/internal/core/ports"
)

// Tool describes where an external program is searched for.
type Tool struct {
	// Name is the directory below <home>/lib the tool is installed to.
	Name string
	// Pattern is a glob for the program file. A leading "**/" searches
	// every directory below a candidate directory.
	Pattern string
	// EnvVar names a directory that may contain the program.
	EnvVar string
}

// Well-known tools.
var (
	YUICompressor   = Tool{Name: "yui_compressor", Pattern: "yuicompressor*.jar", EnvVar: "YUIC_HOME"}
	ClosureCompiler = Tool{Name: "closure_compiler", Pattern: "*compiler*.jar", EnvVar: "CLOSUREC_HOME"}
	Rhino           = Tool{Name: "rhino", Pattern: "**/rhino*.jar", EnvVar: "RHINO_HOME"}
	JsLint          = Tool{Name: "jslint", Pattern: "**/jslint-*.js", EnvVar: "JSLINT_HOME"}
)

// Locator finds external programs on disk.
type Locator struct {
	walker ports.Walker
	home   func() (string, error)
	getenv func(string) string
	getwd  func() (string, error)
}

// NewLocator creates a Locator. home returns the squeeze home directory; it may
// be nil when there is none.
func NewLocator(walker ports.Walker, home func() (string, error)) *Locator {
	return &Locator{
		walker: walker,
		home:   home,
		getenv: os.Getenv,
		getwd:  os.Getwd,
	}
}

// Locate returns explicit when it names a file. Otherwise it searches, in order,
// the directory explicit, the tool's environment variable,
// <home>/lib/<tool>/bin and the working directory. The first directory with a
// match wins; within it the last match in sorted order is returned, which
// prefers the highest version of versioned file names.
func (l *Locator) Locate(tool Tool, explicit string) (string, bool) {
	if info, err := os.Stat(explicit); err == nil && info.Mode().IsRegular() {
		return explicit, true
	}
	for _, dir := range l.candidates(tool, explicit) {
		if match, ok := l.search(dir, tool.Pattern); ok {
			return match, true
		}
	}
	return "", false
}

func (l *Locator) candidates(tool Tool, explicit string) []string {
	var dirs []string
	if explicit != "" {
		dirs = append(dirs, explicit)
	}
	if dir := l.getenv(tool.EnvVar); tool.EnvVar != "" && dir != "" {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}
	if l.home != nil {
		if home, err := l.home(); err == nil && home != "" {
			dirs = append(dirs, filepath.Join(home, "lib", tool.Name, "bin"))
		}
	}
	if cwd, err := l.getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return dirs
}

func (l *Locator) search(dir, pattern string) (string, bool) {
	var matches []string
	if name, ok := strings.CutPrefix(pattern, "**/"); ok {
		for file := range l.walker.WalkFiles(dir, nil) {
			if matched, _ := filepath.Match(name, filepath.Base(file)); matched {
				matches = append(matches, file)
			}
		}
	} else {
		matches, _ = filepath.Glob(filepath.Join(dir, pattern))
	}

	if len(matches) == 0 {
		return "", false
	}
	slices.Sort(matches)
	return matches[len(matches)-1], true
}
