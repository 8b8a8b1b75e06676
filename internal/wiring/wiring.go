// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/chip/internal/adapters/cache"
	_ "go.trai.ch/chip/internal/adapters/config"
	_ "go.trai.ch/chip/internal/adapters/fs"
	_ "go.trai.ch/chip/internal/adapters/logger"
	_ "go.trai.ch/chip/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/chip/internal/adapters/toolchain"
	_ "go.trai.ch/chip/internal/adapters/vhdl"
	_ "go.trai.ch/chip/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/chip/internal/app"
	_ "go.trai.ch/chip/internal/engine/orchestrator"
)
