package domain

import "path/filepath"

// SourceFile is one parsed HDL source: the path and project-assigned
// library it is compiled into, the design units it declares and
// references, the libraries its library clauses make visible, and its
// binding indications. Instances are created once per parse and are
// immutable afterwards.
type SourceFile struct {
	// Path is the absolute path of the file; it is the file's unique key.
	Path string
	// Library it is compiled into, assigned by the project rather than by
	// the file's own declarations.
	Library InternedString
	// Synthesise marks the file for inclusion in synthesis flows.
	Synthesise bool
	// Args maps a tool name to extra compile arguments for this file.
	Args map[string]string

	Definitions []Definition
	References  []Reference
	// Libraries is the set of library names visible to this file. The
	// file's own library is always a member.
	Libraries map[string]struct{}
	Bindings  BindingTable
}

// GraphLabel implements Node using the file's base name without
// extension, mirroring the identifiers used in graph exports.
func (f *SourceFile) GraphLabel() string {
	base := filepath.Base(f.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Defines reports whether the file declares the given unit.
func (f *SourceFile) Defines(u DesignUnit) bool {
	for _, def := range f.Definitions {
		if def.Unit == u {
			return true
		}
	}
	return false
}

// SourceSpec is one entry of the project's ordered source list, before
// parsing.
type SourceSpec struct {
	Path       string
	Library    string
	Synthesise bool
	// Args maps a tool name to extra compile arguments for this file.
	Args map[string]string
}

// Project is a loaded build description: an ordered list of source files
// grouped into libraries, plus the external tools available to compile
// them.
type Project struct {
	Name string
	// Dir is the directory containing the project file; relative source
	// paths are resolved against it.
	Dir string
	// WorkDir is the working directory for compilation outputs.
	WorkDir string
	Files   []SourceSpec
	Tools   map[string]ToolSpec
}

// ToolSpec describes how to drive one external compiler.
type ToolSpec struct {
	Executable string
	// Compile is the argument template for compiling one file. Templates
	// may use the placeholders {file}, {library} and {workdir}.
	Compile []string
	// CreateLibrary is the argument template for creating a library.
	// Empty means the tool needs no explicit library creation step.
	CreateLibrary []string
}

// FilesByLibrary groups the project's sources by target library,
// preserving declaration order within each group.
func (p *Project) FilesByLibrary() map[string][]SourceSpec {
	groups := make(map[string][]SourceSpec)
	for _, f := range p.Files {
		groups[f.Library] = append(groups[f.Library], f)
	}
	return groups
}
