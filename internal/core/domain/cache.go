package domain

import (
	"strings"
	"time"
)

// FileRecord is one compiled file's entry in a tool cache: the content
// hash recorded at compile time and the (informational) compile
// timestamp.
type FileRecord struct {
	Hash       string    `json:"hash"`
	CompiledAt time.Time `json:"compiled_at,omitzero"`
}

// ToolCache records, for a single external tool, the set of libraries it
// has created and the content hash of every file it has compiled. Library
// names are normalized to lower case.
type ToolCache struct {
	Libraries map[string]bool       `json:"libraries"`
	Files     map[string]FileRecord `json:"files"`
}

// NewToolCache returns an empty cache record.
func NewToolCache() *ToolCache {
	return &ToolCache{
		Libraries: make(map[string]bool),
		Files:     make(map[string]FileRecord),
	}
}

// AddLibrary records a created library.
func (c *ToolCache) AddLibrary(name string) {
	if c.Libraries == nil {
		c.Libraries = make(map[string]bool)
	}
	c.Libraries[strings.ToLower(name)] = true
}

// HasLibrary reports whether the named library was previously created.
func (c *ToolCache) HasLibrary(name string) bool {
	return c.Libraries[strings.ToLower(name)]
}

// AddFile records the content hash of a compiled file.
func (c *ToolCache) AddFile(path, hash string, at time.Time) {
	if c.Files == nil {
		c.Files = make(map[string]FileRecord)
	}
	c.Files[path] = FileRecord{Hash: hash, CompiledAt: at}
}

// RemoveFile drops the record for the given path if present.
func (c *ToolCache) RemoveFile(path string) {
	delete(c.Files, path)
}

// FileHash returns the recorded hash for the given path.
func (c *ToolCache) FileHash(path string) (string, bool) {
	rec, ok := c.Files[path]
	return rec.Hash, ok
}
