// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package registry provides the in-memory type-relationship index.
//
// The registry owns the authoritative name -> TypeFact map plus three reverse
// indexes (by superclass, by interface, by mixin) and answers "who relates to
// X" queries for code generators: direct relation lookups, union queries,
// transitive descendant closure, predicate search, generic-argument search,
// structural export, and hierarchy rendering.
//
// # Determinism
//
// Every multi-result query returns facts sorted ascending by type name,
// independent of registration order. Code generators consume these results
// to synthesize source text, so output ordering is a hard requirement, not a
// nicety.
//
// # Error Model
//
// Queries are total over the current state: point lookups and binding lookups
// report absence via a boolean, never an error. Dangling relation targets
// (a superclass name that was never registered) are tolerated and simply
// yield empty result sets. The only ingestion error is the capacity guard.
//
// # Thread Safety
//
// Registry is NOT safe for concurrent mutation. It is designed for:
//   - Single-writer access during an ingestion phase (Register, RegisterAll)
//   - Arbitrarily many concurrent readers once ingestion is done
//
// Interleaving writers with readers is a caller bug; the registry provides
// no internal locking. Same contract as the build/freeze lifecycle used by
// our code graphs.
//
// # Lifecycle
//
// A typical registry lifecycle:
//  1. Create with New()
//  2. Ingest with Register() / RegisterAll()
//  3. Query any number of times
//  4. Clear() to reset, or drop the instance
//
// Registries are caller-owned instances; multiple independent registries
// never share state.
package registry

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrMaxTypesExceeded is returned when the registry has reached its
	// configured maximum capacity. The default capacity is high enough
	// that ordinary builds never hit it.
	ErrMaxTypesExceeded = errors.New("maximum type count exceeded")
)
