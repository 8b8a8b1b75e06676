package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/core/ports"
)

const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher()
		},
	})
}
