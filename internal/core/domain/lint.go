package domain

// LintProblem is one diagnostic reported by the linter.
type LintProblem struct {
	Message string
	Code    string
}

// LintReport is the outcome of linting a single file.
type LintReport struct {
	File     string
	Problems []LintProblem
}

// OK reports whether the file passed without problems.
func (r *LintReport) OK() bool {
	return len(r.Problems) == 0
}
