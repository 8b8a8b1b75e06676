package cache

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/adapters/fs"
	"go.trai.ch/chip/internal/adapters/logger"
	"go.trai.ch/chip/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_store"

// DefaultDir is where the cache file lives relative to the project root.
const DefaultDir = ".chip"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(DefaultDir, "cache.json"), hasher, log), nil
		},
	})
}
