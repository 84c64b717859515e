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
	"sort"

	"github.com/AleutianAI/typefacts/facts"
)

// DefaultMaxTypes is the default maximum number of facts a registry can hold.
const DefaultMaxTypes = 1_000_000

// Options configures Registry behavior and limits.
type Options struct {
	// MaxTypes is the maximum number of facts the registry can hold.
	// Registering beyond this returns ErrMaxTypesExceeded.
	// Default: 1,000,000
	MaxTypes int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{MaxTypes: DefaultMaxTypes}
}

// Option is a functional option for configuring Registry.
type Option func(*Options)

// WithMaxTypes sets the maximum number of facts the registry can hold.
func WithMaxTypes(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTypes = n
		}
	}
}

// nameSet is a set of type names, used as the value of each reverse index.
type nameSet map[string]struct{}

// Registry is the in-memory type-relationship index.
//
// It maintains one primary map (name -> fact) and three reverse indexes
// (relation target -> dependent names), kept consistent on every Register:
// re-registering a name first drops the prior fact's relation entries, so the
// reverse indexes always represent exactly the relations implied by the
// currently registered facts.
//
// See the package documentation for the thread-safety and lifecycle contract.
type Registry struct {
	// types is the primary index: name -> authoritative fact.
	types map[string]facts.TypeFact

	// Reverse indexes: base name -> set of dependent type names.
	bySuperclass map[string]nameSet
	byInterface  map[string]nameSet
	byMixin      map[string]nameSet

	options Options
}

// New creates an empty registry.
//
// Example:
//
//	// Default options (1M max types)
//	reg := registry.New()
//
//	// Custom capacity
//	reg := registry.New(registry.WithMaxTypes(10_000))
func New(opts ...Option) *Registry {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Registry{
		types:        make(map[string]facts.TypeFact),
		bySuperclass: make(map[string]nameSet),
		byInterface:  make(map[string]nameSet),
		byMixin:      make(map[string]nameSet),
		options:      options,
	}
}

// Register inserts or overwrites the fact for fact.Name.
//
// Description:
//
//	Updates the primary map and all three reverse indexes. When the name was
//	already registered, the previous fact's relation entries are removed
//	before the new ones are inserted, so changed relations never leave stale
//	reverse-index entries behind.
//
// Inputs:
//
//	fact - The fact to register. Stored as a deep copy; the caller keeps
//	       ownership of its value. No validation is performed, and relation
//	       targets need not be registered (dangling targets are tolerated).
//
// Outputs:
//
//	error - ErrMaxTypesExceeded when inserting a new name would exceed the
//	        configured capacity. Overwrites never fail.
func (r *Registry) Register(fact facts.TypeFact) error {
	prev, existed := r.types[fact.Name]
	if !existed && len(r.types) >= r.options.MaxTypes {
		return ErrMaxTypesExceeded
	}

	if existed {
		r.dropRelations(prev)
	}

	r.types[fact.Name] = fact.Clone()
	r.addRelations(fact)
	observeRegister(1)

	return nil
}

// RegisterAll registers facts sequentially in the given order.
//
// Later facts overwrite earlier ones with the same name (last write wins).
// There is no atomicity: on a capacity error, facts registered so far remain
// registered. Returns the number of facts applied.
func (r *Registry) RegisterAll(all []facts.TypeFact) (int, error) {
	for i, fact := range all {
		if err := r.Register(fact); err != nil {
			return i, err
		}
	}
	return len(all), nil
}

// FindByName returns the fact registered under name.
//
// O(1). The second return value is false when the name is unknown; absence
// is never an error.
func (r *Registry) FindByName(name string) (facts.TypeFact, bool) {
	fact, ok := r.types[name]
	if !ok {
		return facts.TypeFact{}, false
	}
	return fact.Clone(), true
}

// Len returns the number of registered facts.
func (r *Registry) Len() int {
	return len(r.types)
}

// Clear removes all facts and reverse-index entries.
//
// Subsequent queries behave as on a freshly constructed registry.
func (r *Registry) Clear() {
	r.types = make(map[string]facts.TypeFact)
	r.bySuperclass = make(map[string]nameSet)
	r.byInterface = make(map[string]nameSet)
	r.byMixin = make(map[string]nameSet)
}

// addRelations inserts fact.Name into the reverse indexes for every relation
// the fact records.
func (r *Registry) addRelations(fact facts.TypeFact) {
	if fact.Superclass != "" {
		addToIndex(r.bySuperclass, fact.Superclass, fact.Name)
	}
	for _, iface := range fact.Interfaces {
		addToIndex(r.byInterface, iface, fact.Name)
	}
	for _, mixin := range fact.Mixins {
		addToIndex(r.byMixin, mixin, fact.Name)
	}
}

// dropRelations removes every reverse-index entry implied by fact. Empty
// buckets are deleted so dangling base names don't accumulate.
func (r *Registry) dropRelations(fact facts.TypeFact) {
	if fact.Superclass != "" {
		removeFromIndex(r.bySuperclass, fact.Superclass, fact.Name)
	}
	for _, iface := range fact.Interfaces {
		removeFromIndex(r.byInterface, iface, fact.Name)
	}
	for _, mixin := range fact.Mixins {
		removeFromIndex(r.byMixin, mixin, fact.Name)
	}
}

func addToIndex(index map[string]nameSet, base, dependent string) {
	set, ok := index[base]
	if !ok {
		set = make(nameSet)
		index[base] = set
	}
	set[dependent] = struct{}{}
}

func removeFromIndex(index map[string]nameSet, base, dependent string) {
	set, ok := index[base]
	if !ok {
		return
	}
	delete(set, dependent)
	if len(set) == 0 {
		delete(index, base)
	}
}

// collectSorted materializes a set of type names as facts sorted ascending
// by name. Names without a registered fact (possible only through internal
// inconsistency, never through dangling input) are skipped.
func (r *Registry) collectSorted(names nameSet) []facts.TypeFact {
	out := make([]facts.TypeFact, 0, len(names))
	for name := range names {
		if fact, ok := r.types[name]; ok {
			out = append(out, fact.Clone())
		}
	}
	sortFacts(out)
	return out
}

// sortFacts orders facts ascending by name (lexicographic byte order).
func sortFacts(all []facts.TypeFact) {
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
}

func sortStrings(names []string) {
	sort.Strings(names)
}
