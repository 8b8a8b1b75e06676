package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/adapters/logger"
	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
)

const FactoryNodeID graft.ID = "adapter.toolchain_factory"

var _ ports.ToolchainFactory = (*Factory)(nil)

// Factory builds runners for tools declared in a project file.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// ForTool returns a runner for the named tool.
func (f *Factory) ForTool(project *domain.Project, tool string) (ports.Toolchain, error) {
	return NewFromProject(project, tool, f.logger)
}

func init() {
	graft.Register(graft.Node[ports.ToolchainFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
