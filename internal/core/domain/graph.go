package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// Node is a vertex in the dependency graph: either a *SourceFile or a
// Stub for a referenced unit with no known defining file.
type Node interface {
	GraphLabel() string
}

// Stub represents an unresolved, non-component dependency, such as a
// vendor primitive or an out-of-tree unit. Stubs are terminal: they have
// no outgoing edges and never block scheduling.
type Stub struct {
	Unit DesignUnit
}

// GraphLabel implements Node.
func (s Stub) GraphLabel() string {
	return s.Unit.String()
}

// DependencyGraph maps each source file to the set of nodes it requires.
// Edges point from the dependent file to its dependencies. The graph
// holds every analyzed file, including files without edges.
type DependencyGraph struct {
	files []*SourceFile
	edges map[*SourceFile]map[Node]struct{}
}

// NewDependencyGraph creates an edgeless graph over the given files,
// preserving their project order.
func NewDependencyGraph(files []*SourceFile) *DependencyGraph {
	return &DependencyGraph{
		files: files,
		edges: make(map[*SourceFile]map[Node]struct{}),
	}
}

// AddEdge links parent to one of its dependencies. Self-edges are
// rejected: a file that defines a unit it also references is not linked
// to itself.
func (g *DependencyGraph) AddEdge(parent *SourceFile, child Node) {
	if child == Node(parent) {
		return
	}
	set, ok := g.edges[parent]
	if !ok {
		set = make(map[Node]struct{})
		g.edges[parent] = set
	}
	set[child] = struct{}{}
}

// Files returns all files in the graph in project order.
func (g *DependencyGraph) Files() []*SourceFile {
	return g.files
}

// Dependencies returns the nodes the given file requires, sorted by label
// for deterministic iteration.
func (g *DependencyGraph) Dependencies(f *SourceFile) []Node {
	set := g.edges[f]
	nodes := make([]Node, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].GraphLabel() < nodes[j].GraphLabel()
	})
	return nodes
}

// DependsOn reports whether parent has an edge to child.
func (g *DependencyGraph) DependsOn(parent *SourceFile, child Node) bool {
	_, ok := g.edges[parent][child]
	return ok
}

const (
	stateUnvisited = iota
	stateVisiting
	stateVisited
)

// TopologicalOrder returns the files in dependency-first order: a file
// appears only after every file it depends on. Stub nodes are terminal
// and do not appear in the order. A cycle yields ErrCycleDetected with
// the participating files in the error metadata.
func (g *DependencyGraph) TopologicalOrder() ([]*SourceFile, error) {
	order := make([]*SourceFile, 0, len(g.files))
	visited := make(map[*SourceFile]int, len(g.files))
	var path []*SourceFile

	var visit func(f *SourceFile) error
	visit = func(f *SourceFile) error {
		visited[f] = stateVisiting
		path = append(path, f)

		for _, dep := range g.fileDependencies(f) {
			switch visited[dep] {
			case stateVisiting:
				return g.buildCycleError(path, dep)
			case stateUnvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[f] = stateVisited
		path = path[:len(path)-1]
		order = append(order, f)
		return nil
	}

	for _, f := range g.files {
		if visited[f] == stateUnvisited {
			if err := visit(f); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// fileDependencies returns the file-typed dependencies of f in
// deterministic order. Stubs are skipped.
func (g *DependencyGraph) fileDependencies(f *SourceFile) []*SourceFile {
	set := g.edges[f]
	deps := make([]*SourceFile, 0, len(set))
	for n := range set {
		if file, ok := n.(*SourceFile); ok {
			deps = append(deps, file)
		}
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Path < deps[j].Path })
	return deps
}

// buildCycleError constructs an error carrying the cycle path metadata.
func (g *DependencyGraph) buildCycleError(path []*SourceFile, dep *SourceFile) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].Path + " -> "
	}
	cyclePath += dep.Path
	return zerr.With(zerr.Wrap(ErrCycleDetected, "no compile order exists"), "cycle", cyclePath)
}

// Callchain returns, in safe rebuild order, every file that may require
// recompilation as a consequence of edits to the modified set. The result
// starts with the modified files in caller order, followed by every file
// whose dependencies intersect the result set, visited in topological
// order. A file with no dependencies at all cannot be made stale and is
// skipped unless it was itself modified.
func (g *DependencyGraph) Callchain(modified []*SourceFile) ([]*SourceFile, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	chain := make([]*SourceFile, 0, len(modified))
	inChain := make(map[*SourceFile]struct{}, len(modified))
	for _, f := range modified {
		if _, dup := inChain[f]; dup {
			continue
		}
		chain = append(chain, f)
		inChain[f] = struct{}{}
	}

	for _, f := range order {
		if len(g.edges[f]) == 0 {
			continue
		}
		if _, done := inChain[f]; done {
			continue
		}
		for dep := range g.edges[f] {
			depFile, ok := dep.(*SourceFile)
			if !ok {
				continue
			}
			if _, hit := inChain[depFile]; hit {
				chain = append(chain, f)
				inChain[f] = struct{}{}
				break
			}
		}
	}

	return chain, nil
}
