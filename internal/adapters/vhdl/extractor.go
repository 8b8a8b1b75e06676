// Package vhdl extracts design unit definitions and references from VHDL
// sources using lexical analysis. It is not a VHDL parser: the goal is to
// recover enough structure for dependency ordering, tolerating files that a
// real compiler would reject.
package vhdl

import (
	"os"
	"regexp"
	"strings"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/zerr"
)

// VHDL is case insensitive, so all patterns assume pre-lowercased input.
var (
	commentRE = regexp.MustCompile(`--[^\n]*`)

	libraryRE = regexp.MustCompile(`\blibrary\s*(\w+)\s*;`)

	// use <library>.<package>.<all|member>;
	useRE = regexp.MustCompile(`\buse\s*(\w+)\.(\w+)\.(all|\w+)\s*;`)

	entityRE        = regexp.MustCompile(`\bentity\s+(\w+)\s+is`)
	packageRE       = regexp.MustCompile(`\bpackage\s+(\w+)\s+is`)
	configurationRE = regexp.MustCompile(`\bconfiguration\s+(\w+)\s+of\s+(\w+)\s+is`)
	componentRE     = regexp.MustCompile(`\bcomponent\s*(\w+)`)

	functionRE  = regexp.MustCompile(`\bfunction\s+(\w+)\s*(?:\([^;]*)?\s*return\s*\w+\s+is`)
	procedureRE = regexp.MustCompile(`\bprocedure\s+(\w+)\s*(?:\([^;]*)?\s*is`)

	// for <all|label> : <component> use entity <lib>.<entity>(<arch>)
	// for <all|label> : <component> use configuration <lib>.<configuration>
	bindingRE = regexp.MustCompile(
		`\bfor\s+(all|\w+)\s*:\s*(\w+)\s+use\s+(entity|configuration)\s*(\w+)\.(\w+)(?:\(\w+\))?`)

	// <label> : [entity] [<lib>.]<unit> generic map/port map ... ;
	instanceRE = regexp.MustCompile(
		`\b(\w+)\s*:\s*(?:entity\s*)?(?:(\w+)\.)?(\w+)\s*(?:generic\s+map|port\s+map)[^;]*;`)
)

var _ ports.UnitExtractor = (*Extractor)(nil)

// Extractor implements lexical design unit extraction for VHDL files.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Parse reads the given source file and extracts its design unit
// definitions and references. It returns an error only when the file
// cannot be read; malformed VHDL yields whatever units the patterns
// recover.
func (e *Extractor) Parse(spec domain.SourceSpec) (*domain.SourceFile, error) {
	raw, err := os.ReadFile(spec.Path) //nolint:gosec // Path comes from project config
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", spec.Path)
	}

	library := strings.ToLower(spec.Library)
	if library == "" {
		library = "work"
	}

	data := commentRE.ReplaceAllString(strings.ToLower(string(raw)), "")

	file := &domain.SourceFile{
		Path:       spec.Path,
		Library:    domain.NewInternedString(library),
		Synthesise: spec.Synthesise,
		Args:       spec.Args,
		Libraries:  visibleLibraries(data),
		Bindings:   extractBindings(data, library),
	}

	defs := newDefinitionSet()
	refs := newReferenceSet()

	for _, m := range entityRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{Unit: domain.NewDesignUnit(domain.UnitEntity, m[1], library)})
	}
	for _, m := range packageRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{Unit: domain.NewDesignUnit(domain.UnitPackage, m[1], library)})
	}
	for _, m := range configurationRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{
			Unit:             domain.NewDesignUnit(domain.UnitConfiguration, m[1], library),
			ConfiguredEntity: domain.NewInternedString(m[2]),
		})
	}
	for _, m := range componentRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{Unit: domain.NewDesignUnit(domain.UnitComponent, m[1], library)})
	}
	for _, m := range functionRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{Unit: domain.NewDesignUnit(domain.UnitFunction, m[1], library)})
	}
	for _, m := range procedureRE.FindAllStringSubmatch(data, -1) {
		defs.add(domain.Definition{Unit: domain.NewDesignUnit(domain.UnitProcedure, m[1], library)})
	}

	e.extractUseClauses(data, file, library, refs)
	e.extractInstances(data, file, library, refs)

	file.Definitions = defs.list
	file.References = refs.list
	return file, nil
}

// extractUseClauses records package references from use clauses. Only
// clauses naming a visible library are taken, so partial matches on
// record member access do not produce spurious references.
func (e *Extractor) extractUseClauses(data string, file *domain.SourceFile, library string, refs *referenceSet) {
	for _, m := range useRE.FindAllStringSubmatch(data, -1) {
		lib, pkg, member := m[1], m[2], m[3]
		if _, ok := file.Libraries[lib]; !ok {
			continue
		}
		refs.add(domain.Reference{
			Unit:   domain.NewDesignUnit(domain.UnitPackage, pkg, resolveLibrary(lib, library)),
			Member: domain.NewInternedString(member),
		})
	}
}

// extractInstances records entity and component references from
// instantiation statements. Qualified instantiations reference an entity
// directly. Unqualified instantiations go through the file's binding
// indications; without a binding they reference the component declaration
// and, implicitly, an entity of the same name.
func (e *Extractor) extractInstances(data string, file *domain.SourceFile, library string, refs *referenceSet) {
	for _, m := range instanceRE.FindAllStringSubmatch(data, -1) {
		label, lib, name := m[1], m[2], m[3]

		if lib != "" {
			refs.add(domain.Reference{
				Unit:          domain.NewDesignUnit(domain.UnitEntity, name, resolveLibrary(lib, library)),
				InstanceLabel: domain.NewInternedString(label),
			})
			continue
		}

		if target, ok := file.Bindings.Resolve(label, name); ok {
			refs.add(domain.Reference{
				Unit:          target,
				InstanceLabel: domain.NewInternedString(label),
			})
			continue
		}

		refs.add(domain.Reference{
			Unit:          domain.NewDesignUnit(domain.UnitComponent, name, library),
			InstanceLabel: domain.NewInternedString(label),
		})
		refs.add(domain.Reference{
			Unit: domain.NewDesignUnit(domain.UnitEntity, name, library),
		})
	}
}

// visibleLibraries returns the set of library names declared by the file.
// The work library is always visible.
func visibleLibraries(data string) map[string]struct{} {
	libraries := map[string]struct{}{"work": {}}
	for _, m := range libraryRE.FindAllStringSubmatch(data, -1) {
		libraries[m[1]] = struct{}{}
	}
	return libraries
}

// extractBindings collects the file's binding indications into a lookup
// table keyed by instance label and component name.
func extractBindings(data, library string) domain.BindingTable {
	bindings := domain.NewBindingTable()
	for _, m := range bindingRE.FindAllStringSubmatch(data, -1) {
		label, component, targetSpec := m[1], m[2], m[3]

		kind := domain.UnitEntity
		if targetSpec == "configuration" {
			kind = domain.UnitConfiguration
		}
		target := domain.NewDesignUnit(kind, m[5], resolveLibrary(m[4], library))
		bindings.Add(label, component, target)
	}
	return bindings
}

// resolveLibrary maps the work alias onto the library the file compiles
// into. Any other name refers to a real library.
func resolveLibrary(name, fileLibrary string) string {
	if name == "" || name == "work" {
		return fileLibrary
	}
	return name
}

// definitionSet deduplicates definitions while preserving first-seen order.
type definitionSet struct {
	seen map[domain.Definition]struct{}
	list []domain.Definition
}

func newDefinitionSet() *definitionSet {
	return &definitionSet{seen: make(map[domain.Definition]struct{})}
}

func (s *definitionSet) add(d domain.Definition) {
	if _, ok := s.seen[d]; ok {
		return
	}
	s.seen[d] = struct{}{}
	s.list = append(s.list, d)
}

type referenceSet struct {
	seen map[domain.Reference]struct{}
	list []domain.Reference
}

func newReferenceSet() *referenceSet {
	return &referenceSet{seen: make(map[domain.Reference]struct{})}
}

func (s *referenceSet) add(r domain.Reference) {
	if _, ok := s.seen[r]; ok {
		return
	}
	s.seen[r] = struct{}{}
	s.list = append(s.list, r)
}
