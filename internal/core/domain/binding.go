package domain

import "strings"

// BindAll is the wildcard instance label in a binding indication; it
// applies the binding to every instance of the named component.
const BindAll = "all"

// BindingTable records the binding indications of one source file: for a
// given instance label (or BindAll) and component name, the entity or
// configuration the instantiation must resolve to instead of the default
// component declaration.
type BindingTable map[string]map[string]DesignUnit

// NewBindingTable returns an empty table with the wildcard scope
// initialized.
func NewBindingTable() BindingTable {
	return BindingTable{BindAll: {}}
}

// Add records a binding for the given label and component. The first
// binding for a (label, component) pair wins; later ones are ignored.
func (t BindingTable) Add(label, component string, target DesignUnit) {
	label = strings.ToLower(label)
	component = strings.ToLower(component)
	scope, ok := t[label]
	if !ok {
		scope = map[string]DesignUnit{}
		t[label] = scope
	}
	if _, exists := scope[component]; !exists {
		scope[component] = target
	}
}

// Resolve looks up the binding for an instantiation. An exact instance
// label match takes precedence over the wildcard scope.
func (t BindingTable) Resolve(label, component string) (DesignUnit, bool) {
	label = strings.ToLower(label)
	component = strings.ToLower(component)
	if scope, ok := t[label]; ok {
		if target, ok := scope[component]; ok {
			return target, true
		}
	}
	if scope, ok := t[BindAll]; ok {
		if target, ok := scope[component]; ok {
			return target, true
		}
	}
	return DesignUnit{}, false
}
