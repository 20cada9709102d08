package ports

import "iter"

// Walker enumerates files below a directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type Walker interface {
	// WalkFiles yields every regular file under root in lexical order,
	// skipping entries whose base name matches one of the ignore patterns.
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
