package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFile(path, library string) *SourceFile {
	return &SourceFile{Path: path, Library: NewInternedString(library)}
}

func paths(files []*SourceFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestAddEdgeRejectsSelfEdge(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a})

	g.AddEdge(a, a)
	assert.Empty(t, g.Dependencies(a))
}

func TestAddEdgeDeduplicates(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	b := newFile("/src/b.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a, b})

	g.AddEdge(a, b)
	g.AddEdge(a, b)
	assert.Len(t, g.Dependencies(a), 1)
	assert.True(t, g.DependsOn(a, b))
	assert.False(t, g.DependsOn(b, a))
}

func TestTopologicalOrder(t *testing.T) {
	pkg := newFile("/src/util_pkg.vhd", "work")
	counter := newFile("/src/counter.vhd", "work")
	top := newFile("/src/top.vhd", "work")

	// Deliberately insert files in reverse dependency order.
	g := NewDependencyGraph([]*SourceFile{top, counter, pkg})
	g.AddEdge(top, counter)
	g.AddEdge(counter, pkg)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/util_pkg.vhd", "/src/counter.vhd", "/src/top.vhd"}, paths(order))
}

func TestTopologicalOrderIgnoresStubs(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a})
	g.AddEdge(a, Stub{Unit: NewDesignUnit(UnitPackage, "std_logic_1164", "ieee")})

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/a.vhd"}, paths(order))
}

func TestTopologicalOrderDetectsCycle(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	b := newFile("/src/b.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a, b})
	g.AddEdge(a, b)
	g.AddEdge(b, a)

	_, err := g.TopologicalOrder()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))
}

func TestTopologicalOrderDeterministic(t *testing.T) {
	files := []*SourceFile{
		newFile("/src/a.vhd", "work"),
		newFile("/src/b.vhd", "work"),
		newFile("/src/c.vhd", "work"),
	}
	g := NewDependencyGraph(files)

	// No edges at all: project order is preserved on every run.
	for range 10 {
		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"/src/a.vhd", "/src/b.vhd", "/src/c.vhd"}, paths(order))
	}
}

func TestCallchain(t *testing.T) {
	pkg := newFile("/src/util_pkg.vhd", "work")
	counter := newFile("/src/counter.vhd", "work")
	fifo := newFile("/src/fifo.vhd", "work")
	top := newFile("/src/top.vhd", "work")

	g := NewDependencyGraph([]*SourceFile{pkg, counter, fifo, top})
	g.AddEdge(counter, pkg)
	g.AddEdge(top, counter)
	g.AddEdge(top, fifo)

	chain, err := g.Callchain([]*SourceFile{pkg})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/util_pkg.vhd", "/src/counter.vhd", "/src/top.vhd"}, paths(chain))

	// fifo has dependants but no dependency on the modified set.
	chain, err = g.Callchain([]*SourceFile{fifo})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/fifo.vhd", "/src/top.vhd"}, paths(chain))

	// A leaf file impacts only itself.
	chain, err = g.Callchain([]*SourceFile{top})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/top.vhd"}, paths(chain))
}

func TestCallchainDeduplicatesModified(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a})

	chain, err := g.Callchain([]*SourceFile{a, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/a.vhd"}, paths(chain))
}

func TestCallchainPropagatesCycleError(t *testing.T) {
	a := newFile("/src/a.vhd", "work")
	b := newFile("/src/b.vhd", "work")
	g := NewDependencyGraph([]*SourceFile{a, b})
	g.AddEdge(a, b)
	g.AddEdge(b, a)

	_, err := g.Callchain([]*SourceFile{a})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))
}
