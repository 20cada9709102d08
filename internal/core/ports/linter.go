package ports

import (
	"context"

	"go.trai.ch/squeeze/internal/core/domain"
)

// Linter verifies script sources before they are merged.
//
//go:generate go run go.uber.org/mock/mockgen -source=linter.go -destination=mocks/mock_linter.go -package=mocks
type Linter interface {
	// Check lints a single file. Problems are reported in the returned report;
	// the error is reserved for failures to run the linter at all.
	Check(ctx context.Context, file string) (*domain.LintReport, error)
}
