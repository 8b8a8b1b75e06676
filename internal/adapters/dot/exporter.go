// Package dot renders a dependency graph in Graphviz DOT format.
package dot

import (
	"fmt"
	"io"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options controls the rendered output.
type Options struct {
	// Highlight marks the named nodes, typically a change impact set.
	Highlight map[string]bool
}

// Export writes the graph as a DOT digraph. Source files are drawn as
// boxes, unresolved units as dashed ellipses. Output order is
// deterministic: files in project order, dependencies sorted by label.
func Export(w io.Writer, graph *domain.DependencyGraph, opts Options) error {
	p := &printer{w: w}

	p.line(`digraph dependencies {`)
	p.line(`  rankdir="LR";`)
	p.line(`  node [shape=box];`)

	for _, file := range graph.Files() {
		if opts.Highlight[file.GraphLabel()] {
			p.line(fmt.Sprintf("  %q [style=filled, fillcolor=lightblue];", file.GraphLabel()))
		} else {
			p.line(fmt.Sprintf("  %q;", file.GraphLabel()))
		}
	}

	seenStubs := make(map[string]bool)
	for _, file := range graph.Files() {
		for _, dep := range graph.Dependencies(file) {
			if _, ok := dep.(domain.Stub); !ok {
				continue
			}
			if seenStubs[dep.GraphLabel()] {
				continue
			}
			seenStubs[dep.GraphLabel()] = true
			p.line(fmt.Sprintf("  %q [shape=ellipse, style=dashed];", dep.GraphLabel()))
		}
	}

	for _, file := range graph.Files() {
		for _, dep := range graph.Dependencies(file) {
			if _, ok := dep.(domain.Stub); ok {
				p.line(fmt.Sprintf("  %q -> %q [style=dashed];", file.GraphLabel(), dep.GraphLabel()))
			} else {
				p.line(fmt.Sprintf("  %q -> %q;", file.GraphLabel(), dep.GraphLabel()))
			}
		}
	}

	p.line(`}`)
	if p.err != nil {
		return zerr.Wrap(p.err, "failed to write dot output")
	}
	return nil
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}
