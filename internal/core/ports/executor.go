// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs argv[0] with the remaining arguments in dir.
	//
	// Output is written to stdout and stderr. Nil writers route output to the logger.
	// It returns an error if the process cannot start or exits unsuccessfully.
	Execute(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) error
}
