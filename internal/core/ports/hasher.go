package ports

// Hasher defines the interface for computing build fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFingerprint hashes the contents of files in order together with the
	// given options, so that any change to an input or an option yields a new value.
	ComputeFingerprint(files []string, options map[string]string) (string, error)
}
