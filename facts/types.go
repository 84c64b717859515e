// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package facts defines the normalized fact schema shared by fact producers
// (extractors, loaders) and the registry.
//
// A TypeFact describes one declared type: its superclass, implemented
// interfaces, applied mixins, generic-argument bindings, and members. Facts
// are plain value records suitable for serialization to JSON or YAML.
//
// Design principles:
//   - Language-agnostic: facts describe relations by name, never by resolved type
//   - Value semantics: facts are copied, not shared; producers keep no aliases
//   - No map[string]interface{} - concrete types only
package facts

import (
	"fmt"
	"strings"
)

// QualifiedKeySeparator joins a base type name and a parameter name into the
// flat generic-binding key, e.g. "Repository.T".
const QualifiedKeySeparator = "."

// MethodFact describes one method declared on a type.
//
// MethodFact is an immutable value record. Parameter types are recorded in
// declaration order.
type MethodFact struct {
	// Name is the method's identifier as declared in source.
	Name string `json:"name" yaml:"name"`

	// ReturnType is the declared return type, or "" when the declaration
	// carries none (constructors, untyped signatures).
	ReturnType string `json:"return_type,omitempty" yaml:"return_type,omitempty"`

	// ParameterTypes lists the declared parameter types in order.
	ParameterTypes []string `json:"parameter_types,omitempty" yaml:"parameter_types,omitempty"`

	// IsStatic reports whether the method is declared static.
	IsStatic bool `json:"is_static,omitempty" yaml:"is_static,omitempty"`
}

// TypeFact describes one declared type and its recorded relations.
//
// Identity is Name: within a single registry instance at most one TypeFact
// per name is authoritative at any time. Re-registering a name replaces the
// previous fact.
//
// Relation targets (Superclass, Interfaces, Mixins) are plain names. The
// registry tolerates dangling targets: a relation to a name that is never
// registered simply yields empty results on the corresponding reverse query.
type TypeFact struct {
	// Name uniquely identifies the type within one registry instance.
	Name string `json:"name" yaml:"name"`

	// Library identifies the declaring unit (package, module, file).
	// Opaque to the registry; preserved for export.
	Library string `json:"library,omitempty" yaml:"library,omitempty"`

	// Superclass is the single superclass name, or "" for a root type.
	Superclass string `json:"superclass,omitempty" yaml:"superclass,omitempty"`

	// Interfaces lists implemented interface names. Semantically a set;
	// declaration order is preserved for export but not significant to queries.
	Interfaces []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`

	// Mixins lists applied mixin names in application order.
	Mixins []string `json:"mixins,omitempty" yaml:"mixins,omitempty"`

	// TypeParameters lists the type's own generic parameter names in
	// declaration order.
	TypeParameters []string `json:"type_parameters,omitempty" yaml:"type_parameters,omitempty"`

	// GenericArguments maps a qualified key "{Base}.{Param}" to the concrete
	// type name bound for that parameter, e.g. "Repository.T" -> "User".
	GenericArguments map[string]string `json:"generic_arguments,omitempty" yaml:"generic_arguments,omitempty"`

	// Methods lists declared methods in declaration order.
	Methods []MethodFact `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Properties lists declared property names in declaration order.
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// QualifiedKey builds the flat generic-binding key for a base type's
// parameter, e.g. QualifiedKey("Repository", "T") == "Repository.T".
func QualifiedKey(base, param string) string {
	return base + QualifiedKeySeparator + param
}

// SplitQualifiedKey splits a flat binding key into its base and parameter
// parts. The split happens at the last separator so base names that are
// themselves qualified ("pkg.Repository") survive a round trip.
//
// Returns ok=false when the key contains no separator.
func SplitQualifiedKey(key string) (base, param string, ok bool) {
	i := strings.LastIndex(key, QualifiedKeySeparator)
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+len(QualifiedKeySeparator):], true
}

// GenericArgument returns the concrete type bound for base's parameter on
// this fact, looking up the flat key "{base}.{param}".
//
// The second return value is false when no binding is recorded. Absence is
// not an error: facts for non-generic types simply carry no bindings.
func (f TypeFact) GenericArgument(base, param string) (string, bool) {
	if len(f.GenericArguments) == 0 {
		return "", false
	}
	v, ok := f.GenericArguments[QualifiedKey(base, param)]
	return v, ok
}

// IsGeneric reports whether the type declares its own type parameters.
func (f TypeFact) IsGeneric() bool {
	return len(f.TypeParameters) > 0
}

// Clone returns a deep copy of the fact.
//
// The registry hands out values, so callers mutating a query result must not
// be able to reach the registry's stored slices and maps.
func (f TypeFact) Clone() TypeFact {
	out := f
	out.Interfaces = cloneStrings(f.Interfaces)
	out.Mixins = cloneStrings(f.Mixins)
	out.TypeParameters = cloneStrings(f.TypeParameters)
	out.Properties = cloneStrings(f.Properties)

	if f.GenericArguments != nil {
		out.GenericArguments = make(map[string]string, len(f.GenericArguments))
		for k, v := range f.GenericArguments {
			out.GenericArguments[k] = v
		}
	}

	if f.Methods != nil {
		out.Methods = make([]MethodFact, len(f.Methods))
		for i, m := range f.Methods {
			mc := m
			mc.ParameterTypes = cloneStrings(m.ParameterTypes)
			out.Methods[i] = mc
		}
	}

	return out
}

// Validate checks that the fact is structurally sound.
//
// Producers (extractor, loader) validate before handing facts to consumers.
// The registry itself never validates: ingestion accepts any syntactically
// valid fact, and dangling relation targets are tolerated by design.
func (f TypeFact) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidFact)
	}
	for i, m := range f.Methods {
		if m.Name == "" {
			return fmt.Errorf("%w: method[%d] of %q has empty name", ErrInvalidFact, i, f.Name)
		}
	}
	for key := range f.GenericArguments {
		if _, _, ok := SplitQualifiedKey(key); !ok {
			return fmt.Errorf("%w: generic argument key %q on %q is not of the form \"Base.Param\"",
				ErrInvalidFact, key, f.Name)
		}
	}
	return nil
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
