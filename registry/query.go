// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"time"

	"github.com/AleutianAI/typefacts/facts"
)

// Predicate evaluates a fact for inclusion in a Where result.
type Predicate func(facts.TypeFact) bool

// FindSubclassesOf returns all facts whose recorded superclass is base.
//
// Uses the superclass reverse index: O(1) lookup plus O(k log k) for the
// sorted materialization of k hits. Results are sorted ascending by name.
// An unknown or dangling base yields an empty slice, never an error.
func (r *Registry) FindSubclassesOf(base string) []facts.TypeFact {
	defer observeQuery("subclasses", time.Now())
	return r.collectSorted(r.bySuperclass[base])
}

// FindImplementersOf returns all facts whose interface list contains iface.
//
// Sorted ascending by name. Unknown interfaces yield an empty slice.
func (r *Registry) FindImplementersOf(iface string) []facts.TypeFact {
	defer observeQuery("implementers", time.Now())
	return r.collectSorted(r.byInterface[iface])
}

// FindByMixin returns all facts whose mixin list contains mixin.
//
// Sorted ascending by name. Unknown mixins yield an empty slice.
func (r *Registry) FindByMixin(mixin string) []facts.TypeFact {
	defer observeQuery("mixin", time.Now())
	return r.collectSorted(r.byMixin[mixin])
}

// FindByAnyBase returns all facts related to any of the given base names
// through any relation kind (superclass, interface, or mixin).
//
// A fact matching through several relations or several base names appears
// exactly once. Results are sorted ascending by name.
func (r *Registry) FindByAnyBase(bases []string) []facts.TypeFact {
	defer observeQuery("any_base", time.Now())

	hits := make(nameSet)
	for _, base := range bases {
		for name := range r.bySuperclass[base] {
			hits[name] = struct{}{}
		}
		for name := range r.byInterface[base] {
			hits[name] = struct{}{}
		}
		for name := range r.byMixin[base] {
			hits[name] = struct{}{}
		}
	}
	return r.collectSorted(hits)
}

// Where returns all facts matching the predicate, sorted ascending by name.
//
// Full scan, O(n): predicates get no indexing benefit. A nil predicate
// matches nothing.
func (r *Registry) Where(pred Predicate) []facts.TypeFact {
	defer observeQuery("where", time.Now())

	if pred == nil {
		return []facts.TypeFact{}
	}
	out := make([]facts.TypeFact, 0)
	for _, fact := range r.types {
		if pred(fact) {
			out = append(out, fact.Clone())
		}
	}
	sortFacts(out)
	return out
}

// FindByGenericArgument returns all facts whose binding for base's parameter
// equals concrete, comparing the flat "{base}.{param}" entry by exact string
// equality. No structural matching of nested generics is attempted:
// "List<User>" only matches "List<User>".
//
// Full scan, O(n). Results sorted ascending by name.
func (r *Registry) FindByGenericArgument(base, param, concrete string) []facts.TypeFact {
	defer observeQuery("generic_argument", time.Now())

	key := facts.QualifiedKey(base, param)
	out := make([]facts.TypeFact, 0)
	for _, fact := range r.types {
		if bound, ok := fact.GenericArguments[key]; ok && bound == concrete {
			out = append(out, fact.Clone())
		}
	}
	sortFacts(out)
	return out
}
