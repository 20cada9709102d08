package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

const jsLintOK = "jslint: No problems"

var _ ports.Linter = (*Linter)(nil)

// Linter runs JsLint on the Rhino JavaScript engine.
type Linter struct {
	executor ports.Executor
	locator  *Locator
	path     string
}

// NewLinter creates a Linter. path is an optional directory searched first for
// the Rhino jar and the JsLint script.
func NewLinter(executor ports.Executor, locator *Locator, path string) *Linter {
	return &Linter{executor: executor, locator: locator, path: path}
}

// Check implements ports.Linter.
func (l *Linter) Check(ctx context.Context, file string) (*domain.LintReport, error) {
	rhino, ok := l.locator.Locate(Rhino, l.path)
	if !ok {
		return nil, zerr.With(domain.ErrLinterNotFound, "tool", Rhino.Name)
	}
	script, ok := l.locator.Locate(JsLint, l.path)
	if !ok {
		return nil, zerr.With(domain.ErrLinterNotFound, "tool", JsLint.Name)
	}
	if _, err := os.Stat(file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrAssetNotFound.Error()), "path", file)
	}

	// JsLint exits non-zero when it finds problems; the output is the report.
	var out bytes.Buffer
	argv := []string{"java", "-jar", rhino, script, file}
	runErr := l.executor.Execute(ctx, filepath.Dir(file), argv, &out, &out)

	report := ParseJsLint(file, out.String())
	if runErr != nil && report.OK() {
		return nil, runErr
	}
	return report, nil
}

// ParseJsLint reads JsLint output: either the no-problems line, or pairs of
// message and offending code lines.
func ParseJsLint(file, output string) *domain.LintReport {
	report := &domain.LintReport{File: file}

	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 1 && strings.Contains(lines[0], jsLintOK) {
		return report
	}

	for i := 0; i < len(lines); i += 2 {
		problem := domain.LintProblem{Message: lines[i]}
		if i+1 < len(lines) {
			problem.Code = lines[i+1]
		}
		report.Problems = append(report.Problems, problem)
	}
	return report
}
