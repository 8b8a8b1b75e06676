// Package cache persists per-tool compilation records in a flat JSON file.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore. Records are keyed by tool name so
// that switching tools never reuses another tool's compilation state.
type Store struct {
	path   string
	hasher ports.Hasher
	logger ports.Logger

	mu    sync.RWMutex
	tools map[string]*domain.ToolCache
}

// NewStore creates a cache store backed by the file at the given path.
// A missing or unreadable cache file yields an empty store rather than
// an error so a corrupt cache only costs a full rebuild.
func NewStore(path string, hasher ports.Hasher, logger ports.Logger) *Store {
	s := &Store{
		path:   filepath.Clean(path),
		hasher: hasher,
		logger: logger,
		tools:  make(map[string]*domain.ToolCache),
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("could not read cache file %s, starting with an empty cache", s.path))
		}
		return
	}

	if len(data) == 0 {
		return
	}

	if err := json.Unmarshal(data, &s.tools); err != nil {
		s.logger.Warn(fmt.Sprintf("cache file %s is corrupt, starting with an empty cache", s.path))
		s.tools = make(map[string]*domain.ToolCache)
	}
}

// Changed reports whether the file's content differs from the record
// held for the given tool. A file with no record, a missing file or a
// hashing failure all count as changed.
func (s *Store) Changed(tool, path string) bool {
	s.mu.RLock()
	var (
		cached string
		ok     bool
	)
	if tc, exists := s.tools[tool]; exists {
		cached, ok = tc.FileHash(path)
	}
	s.mu.RUnlock()
	if !ok {
		return true
	}

	hash, err := s.hasher.ComputeFileHash(path)
	if err != nil {
		return true
	}
	return hash != cached
}

// AddFile records the file's current content hash for the given tool.
func (s *Store) AddFile(tool, path string, at time.Time) error {
	hash, err := s.hasher.ComputeFileHash(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCache(tool).AddFile(path, hash, at)
	return nil
}

// RemoveFile drops the file's record for the given tool.
func (s *Store) RemoveFile(tool, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCache(tool).RemoveFile(path)
}

// AddLibrary records that the given tool has created a library.
func (s *Store) AddLibrary(tool, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCache(tool).AddLibrary(name)
}

// HasLibrary reports whether the given tool has created a library.
func (s *Store) HasLibrary(tool, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tc, ok := s.tools[tool]; ok {
		return tc.HasLibrary(name)
	}
	return false
}

// Save writes the store to disk. The file is replaced atomically so a
// crash mid-write never leaves a truncated cache behind.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.tools, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary cache file")
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write cache")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temporary cache file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to replace cache file")
	}
	return nil
}

// Clear discards all records and removes the cache file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.tools = make(map[string]*domain.ToolCache)
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache file"), "path", s.path)
	}
	return nil
}

// toolCache returns the record set for a tool, creating it on first use.
// Callers must hold the lock.
func (s *Store) toolCache(tool string) *domain.ToolCache {
	tc, ok := s.tools[tool]
	if !ok {
		tc = domain.NewToolCache()
		s.tools[tool] = tc
	}
	return tc
}
