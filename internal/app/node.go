package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chip/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/adapters/vhdl"      //nolint:depguard // Wired in app layer
	watcheradapter "go.trai.ch/chip/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/chip/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			vhdl.ExtractorNodeID,
			cache.NodeID,
			toolchain.FactoryNodeID,
			orchestrator.NodeID,
			watcheradapter.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ProjectLoader](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[ports.UnitExtractor](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			factory, err := graft.Dep[ports.ToolchainFactory](ctx)
			if err != nil {
				return nil, err
			}
			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, extractor, store, factory, orch, watch, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Telemetry: tel}, nil
		},
	})
}
