package vhdl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/core/ports"
)

const (
	ExtractorNodeID graft.ID = "adapter.vhdl.extractor"
)

func init() {
	graft.Register(graft.Node[ports.UnitExtractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.UnitExtractor, error) {
			return NewExtractor(), nil
		},
	})
}
