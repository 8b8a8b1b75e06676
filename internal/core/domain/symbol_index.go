package domain

import "sort"

// SymbolIndex aggregates extraction results across a file set: which
// files define each design unit and which files reference it. More than
// one file defining the same unit is not collapsed; the full set is kept
// so ambiguity stays observable to the caller.
type SymbolIndex struct {
	definitions map[DesignUnit][]*SourceFile
	references  map[DesignUnit][]*SourceFile
}

// NewSymbolIndex builds the definition and reference maps for the given
// files.
func NewSymbolIndex(files []*SourceFile) *SymbolIndex {
	idx := &SymbolIndex{
		definitions: make(map[DesignUnit][]*SourceFile),
		references:  make(map[DesignUnit][]*SourceFile),
	}
	for _, f := range files {
		for _, def := range f.Definitions {
			if !containsFile(idx.definitions[def.Unit], f) {
				idx.definitions[def.Unit] = append(idx.definitions[def.Unit], f)
			}
		}
		for _, ref := range f.References {
			if !containsFile(idx.references[ref.Unit], f) {
				idx.references[ref.Unit] = append(idx.references[ref.Unit], f)
			}
		}
	}
	return idx
}

// Definitions returns the files defining the given unit, in project
// order. An empty result means the unit is unresolved; more than one
// entry means the definition is ambiguous.
func (idx *SymbolIndex) Definitions(u DesignUnit) []*SourceFile {
	return idx.definitions[u]
}

// References returns the files referencing the given unit, in project
// order.
func (idx *SymbolIndex) References(u DesignUnit) []*SourceFile {
	return idx.references[u]
}

// Ambiguous returns every unit defined by more than one file, sorted for
// deterministic reporting.
func (idx *SymbolIndex) Ambiguous() []DesignUnit {
	var units []DesignUnit
	for u, files := range idx.definitions {
		if len(files) > 1 {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].String() < units[j].String() })
	return units
}

func containsFile(files []*SourceFile, f *SourceFile) bool {
	for _, existing := range files {
		if existing == f {
			return true
		}
	}
	return false
}

// BuildGraph links every referencing file to the files defining the units
// it references:
//
//   - a file that defines its own dependency gets no edge for it;
//   - a resolved reference gets an edge to each defining file;
//   - an unresolved non-component reference gets a terminal stub node;
//   - an unresolved component reference gets neither edge nor stub (the
//     matching entity may live out of tree); these are returned as
//     warning data so a front-end can report them.
func BuildGraph(files []*SourceFile) (*DependencyGraph, []Reference) {
	idx := NewSymbolIndex(files)
	g := NewDependencyGraph(files)
	var unbound []Reference

	for _, parent := range files {
		for _, ref := range parent.References {
			children := idx.Definitions(ref.Unit)
			if containsFile(children, parent) {
				continue
			}
			if len(children) == 0 {
				if ref.Unit.Kind == UnitComponent {
					unbound = append(unbound, ref)
					continue
				}
				g.AddEdge(parent, Stub{Unit: ref.Unit})
				continue
			}
			for _, child := range children {
				g.AddEdge(parent, child)
			}
		}
	}

	return g, unbound
}
