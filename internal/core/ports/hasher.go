// Package ports defines the core interfaces for the application.
package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash computes the content hash of the file at path,
	// rendered as a fixed-width hex string.
	ComputeFileHash(path string) (string, error)
}
