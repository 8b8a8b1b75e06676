package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/core/ports"
)

const (
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
