// Package telemetry provides telemetry implementations that do not
// depend on a rendering backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
)

// NoOp is a telemetry implementation that discards everything. It is
// used when no progress rendering is wanted, and in tests.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards all output.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	vertex := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close does nothing.
func (t *NoOp) Close() error {
	return nil
}

// NoOpVertex discards all vertex output.
type NoOpVertex struct{}

// Stdout returns a writer that discards its input.
func (v *NoOpVertex) Stdout() io.Writer {
	return io.Discard
}

// Stderr returns a writer that discards its input.
func (v *NoOpVertex) Stderr() io.Writer {
	return io.Discard
}

// Log does nothing.
func (v *NoOpVertex) Log(_ domain.LogLevel, _ string) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}
