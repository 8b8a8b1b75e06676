package ports

import (
	"context"
	"io"

	"go.trai.ch/chip/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of a build run as a series of vertices,
// one per unit of work (a file compilation, a library creation).
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of work being recorded.
type Vertex interface {
	// Stdout returns a writer capturing the work's standard output.
	Stdout() io.Writer
	// Stderr returns a writer capturing the work's error output.
	Stderr() io.Writer
	// Log records a structured log message for this vertex.
	Log(level domain.LogLevel, msg string)
	// Cached marks the vertex as skipped because its result is current.
	Cached()
	// Complete marks the vertex as finished, successfully or with err.
	Complete(err error)
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying the vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
