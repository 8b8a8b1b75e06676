package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/adapters/cache"
	"go.trai.ch/chip/internal/adapters/logger"
	"go.trai.ch/chip/internal/adapters/telemetry/progrock"
	"go.trai.ch/chip/internal/core/ports"
)

const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, telemetry, log), nil
		},
	})
}
