package ports

import "time"

// CacheStore defines the interface for the persisted incremental build
// cache: per-tool records of created libraries and compiled file hashes.
// Implementations load an empty record when the persisted file is missing
// or corrupt, and must write atomically.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Changed reports whether the file's on-disk content differs from
	// the hash recorded for the given tool. A file that was never
	// recorded, or that cannot be read, reports true.
	Changed(tool, path string) bool

	// AddFile records the file's current content hash (and the given
	// compile timestamp) for the tool.
	AddFile(tool, path string, at time.Time) error

	// RemoveFile drops the file's record for the tool, forcing a
	// recompile on the next attempt.
	RemoveFile(tool, path string)

	// AddLibrary records a created library for the tool.
	AddLibrary(tool, name string)

	// HasLibrary reports whether the tool previously created the named
	// library.
	HasLibrary(tool, name string) bool

	// Save persists the cache.
	Save() error

	// Clear reinitializes the cache to empty and persists it.
	Clear() error
}
