package dot_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chip/internal/adapters/dot"
	"go.trai.ch/chip/internal/core/domain"
)

func TestExport(t *testing.T) {
	top := &domain.SourceFile{Path: "/src/top.vhd", Library: domain.NewInternedString("work")}
	counter := &domain.SourceFile{Path: "/src/counter.vhd", Library: domain.NewInternedString("work")}
	pkg := &domain.SourceFile{Path: "/src/util_pkg.vhd", Library: domain.NewInternedString("work")}

	graph := domain.NewDependencyGraph([]*domain.SourceFile{top, counter, pkg})
	graph.AddEdge(top, counter)
	graph.AddEdge(top, pkg)
	graph.AddEdge(counter, domain.Stub{
		Unit: domain.NewDesignUnit(domain.UnitPackage, "std_logic_1164", "ieee"),
	})

	var buf bytes.Buffer
	err := dot.Export(&buf, graph, dot.Options{Highlight: map[string]bool{"top": true}})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "graph", buf.Bytes())
}

func TestExportEmptyGraph(t *testing.T) {
	graph := domain.NewDependencyGraph(nil)

	var buf bytes.Buffer
	err := dot.Export(&buf, graph, dot.Options{})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "empty", buf.Bytes())
}
