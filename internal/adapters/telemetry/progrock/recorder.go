// Package progrock provides the Progrock implementation of the telemetry
// adapter. Every compiled file gets its own vertex, so tool output stays
// attributable to the file that produced it.
package progrock

import (
	"context"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"github.com/vito/progrock/console"
	"go.trai.ch/chip/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder rendering progress to stderr.
func New() *Recorder {
	return NewConsole(os.Stderr)
}

// NewConsole creates a new Recorder rendering plain-text progress to w.
func NewConsole(w io.Writer) *Recorder {
	return NewRecorder(console.NewWriter(w))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex and attaches it to the context.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
