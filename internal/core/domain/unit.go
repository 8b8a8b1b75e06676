// Package domain contains the core domain models for HDL design-unit
// extraction, dependency analysis and incremental compilation.
package domain

import "strings"

// UnitKind enumerates the kinds of HDL design units the extractor
// recognizes.
type UnitKind uint8

const (
	// UnitEntity is an entity declaration or reference.
	UnitEntity UnitKind = iota
	// UnitComponent is a component declaration or instantiation.
	UnitComponent
	// UnitPackage is a package declaration or use-clause reference.
	UnitPackage
	// UnitConfiguration is a configuration declaration or binding target.
	UnitConfiguration
	// UnitFunction is a function declaration.
	UnitFunction
	// UnitProcedure is a procedure declaration.
	UnitProcedure
)

// String returns the lower-case HDL keyword for the unit kind.
func (k UnitKind) String() string {
	switch k {
	case UnitEntity:
		return "entity"
	case UnitComponent:
		return "component"
	case UnitPackage:
		return "package"
	case UnitConfiguration:
		return "configuration"
	case UnitFunction:
		return "function"
	case UnitProcedure:
		return "procedure"
	default:
		return "unknown"
	}
}

// DesignUnit identifies a named, independently compilable piece of HDL.
// Name and Library are normalized to lower case (HDL identifiers are case
// insensitive). Two units are equal iff their (Kind, Name, Library)
// triples match, so a DesignUnit is usable directly as a map key.
//
// Attributes that annotate a particular declaration or reference but do
// not participate in identity (the entity a configuration configures, an
// instance label, a package member) live on Definition and Reference.
type DesignUnit struct {
	Kind    UnitKind
	Name    InternedString
	Library InternedString
}

// NewDesignUnit creates a DesignUnit with name and library normalized to
// lower case.
func NewDesignUnit(kind UnitKind, name, library string) DesignUnit {
	return DesignUnit{
		Kind:    kind,
		Name:    NewInternedString(strings.ToLower(name)),
		Library: NewInternedString(strings.ToLower(library)),
	}
}

// String renders the unit as "<kind> <library>.<name>".
func (u DesignUnit) String() string {
	return u.Kind.String() + " " + u.Library.String() + "." + u.Name.String()
}

// Definition records one design unit declared by a source file.
type Definition struct {
	Unit DesignUnit
	// ConfiguredEntity is the entity a configuration declaration
	// configures. Empty for every other kind.
	ConfiguredEntity InternedString
}

// Reference records one design unit referenced by a source file.
type Reference struct {
	Unit DesignUnit
	// InstanceLabel is the label of the instantiation statement that
	// produced this reference. Empty for use-clause references.
	InstanceLabel InternedString
	// Member is the referenced member of a package use-clause: "all" or a
	// named unit. Empty for non-package references.
	Member InternedString
}
