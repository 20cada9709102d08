package ports

import (
	"context"

	"go.trai.ch/squeeze/internal/core/domain"
)

// ReloadServer tells connected browsers that bundles were rebuilt.
//
//go:generate go run go.uber.org/mock/mockgen -source=reload.go -destination=mocks/mock_reload.go -package=mocks
type ReloadServer interface {
	// Serve listens on addr until ctx is canceled.
	Serve(ctx context.Context, addr string) error
	// Notify broadcasts a rebuild to connected browsers.
	Notify(rebuild domain.Rebuild)
}
