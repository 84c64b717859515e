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

// FindAllDescendantsOf returns every fact transitively reachable from base
// through the reverse of any relation kind: direct subclasses, implementers,
// and mixin users of base, then their dependents, and so on.
//
// Description:
//
//	Iterative breadth-first traversal over reverse-index edges. An explicit
//	visited set guarantees each name is enqueued at most once, so the result
//	carries no duplicates and the traversal terminates even when the supplied
//	relation data contains a cycle. Well-formed inheritance data is acyclic,
//	but the algorithm must not assume a tree or DAG.
//
// Inputs:
//
//	base - Name to start from. Need not be registered; a dangling base with
//	       registered dependents still finds them.
//
// Outputs:
//
//	[]facts.TypeFact - All descendants, excluding base itself, sorted
//	                   ascending by name. Empty slice when nothing relates
//	                   to base.
func (r *Registry) FindAllDescendantsOf(base string) []facts.TypeFact {
	defer observeQuery("descendants", time.Now())

	// Pre-visiting base keeps cyclic data from reporting a type as its own
	// descendant.
	visited := make(nameSet)
	visited[base] = struct{}{}

	found := make(nameSet)
	queue := []string{base}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, index := range []map[string]nameSet{r.bySuperclass, r.byInterface, r.byMixin} {
			for dependent := range index[current] {
				if _, seen := visited[dependent]; seen {
					continue
				}
				visited[dependent] = struct{}{}
				found[dependent] = struct{}{}
				queue = append(queue, dependent)
			}
		}
	}

	return r.collectSorted(found)
}

// DescendantNames returns the names from FindAllDescendantsOf without
// materializing the facts. Sorted ascending.
func (r *Registry) DescendantNames(base string) []string {
	descendants := r.FindAllDescendantsOf(base)
	names := make([]string, len(descendants))
	for i, fact := range descendants {
		names[i] = fact.Name
	}
	return names
}

// Names is a convenience for extracting sorted names from a query result.
func Names(all []facts.TypeFact) []string {
	names := make([]string, len(all))
	for i, fact := range all {
		names[i] = fact.Name
	}
	return names
}
