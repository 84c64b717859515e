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

	"github.com/google/uuid"

	"github.com/AleutianAI/typefacts/facts"
)

// Statistics summarizes the registered facts for an export snapshot.
type Statistics struct {
	// TotalTypes is the number of registered facts.
	TotalTypes int `json:"total_types"`

	// WithSuperclass counts facts that record a superclass.
	WithSuperclass int `json:"with_superclass"`

	// WithInterfaces counts facts implementing at least one interface.
	WithInterfaces int `json:"with_interfaces"`

	// WithMixins counts facts using at least one mixin.
	WithMixins int `json:"with_mixins"`

	// Generic counts facts declaring at least one type parameter.
	Generic int `json:"generic"`
}

// Snapshot is a structural export of the registry: every fact plus aggregate
// statistics. Snapshots use only primitives, lists, and maps, so they
// serialize cleanly to JSON or any other interchange format.
//
// Note: all timestamps are int64 UnixMilli per project conventions.
type Snapshot struct {
	// SnapshotID uniquely identifies this export.
	SnapshotID string `json:"snapshot_id"`

	// GeneratedAtMilli is when the snapshot was taken.
	GeneratedAtMilli int64 `json:"generated_at_milli"`

	// Types contains every registered fact, sorted ascending by name.
	Types []facts.TypeFact `json:"types"`

	// Statistics are aggregate counts over Types.
	Statistics Statistics `json:"statistics"`
}

// Export produces a structural snapshot of the registry.
//
// Pure read: the registry is not modified, and the snapshot shares no state
// with it. Types are sorted ascending by name so repeated exports of the
// same registry are byte-identical apart from SnapshotID and timestamp.
func (r *Registry) Export() Snapshot {
	defer observeQuery("export", time.Now())

	types := make([]facts.TypeFact, 0, len(r.types))
	stats := Statistics{TotalTypes: len(r.types)}

	for _, fact := range r.types {
		types = append(types, fact.Clone())
		if fact.Superclass != "" {
			stats.WithSuperclass++
		}
		if len(fact.Interfaces) > 0 {
			stats.WithInterfaces++
		}
		if len(fact.Mixins) > 0 {
			stats.WithMixins++
		}
		if fact.IsGeneric() {
			stats.Generic++
		}
	}
	sortFacts(types)

	return Snapshot{
		SnapshotID:       uuid.NewString(),
		GeneratedAtMilli: time.Now().UnixMilli(),
		Types:            types,
		Statistics:       stats,
	}
}

// KeySelector derives a map key from a fact for TypeMap.
type KeySelector func(facts.TypeFact) string

// TypeMap builds a mapping from a derived key to the fact's name.
//
// A nil selector defaults to the fact's own name. Facts are applied in
// name-sorted order and key collisions silently overwrite: last applied
// wins. That is documented behavior, not an error.
func (r *Registry) TypeMap(selector KeySelector) map[string]string {
	defer observeQuery("type_map", time.Now())

	if selector == nil {
		selector = func(f facts.TypeFact) string { return f.Name }
	}

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sortStrings(names)

	out := make(map[string]string, len(names))
	for _, name := range names {
		out[selector(r.types[name])] = name
	}
	return out
}
