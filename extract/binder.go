// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package extract

import "github.com/AleutianAI/typefacts/facts"

// BindGenericArguments resolves heritage references into qualified
// generic-argument bindings.
//
// Description:
//
//	For each HeritageRef, the base type's declared parameters are zipped
//	positionally with the reference's concrete arguments and written into
//	the referencing fact's GenericArguments under "{Base}.{Param}" keys.
//	References to unknown bases, and surplus arguments beyond the base's
//	declared parameters, are ignored: dangling heritage is tolerated the
//	same way registry queries tolerate dangling names.
//
// Inputs:
//   - all: The complete fact set, typically accumulated across files.
//     Mutated in place.
//   - refs: Heritage references collected during extraction.
//
// Outputs:
//   - int: Number of bindings written.
//
// Thread Safety:
//
//	Not safe for concurrent use with writers of the fact slice.
func BindGenericArguments(all []facts.TypeFact, refs []HeritageRef) int {
	byName := make(map[string]int, len(all))
	for i := range all {
		byName[all[i].Name] = i
	}

	bound := 0
	for _, ref := range refs {
		baseIdx, ok := byName[ref.Base]
		if !ok {
			continue
		}
		ownerIdx, ok := byName[ref.TypeName]
		if !ok {
			continue
		}
		params := all[baseIdx].TypeParameters

		for pos, arg := range ref.Arguments {
			if pos >= len(params) {
				break
			}
			owner := &all[ownerIdx]
			if owner.GenericArguments == nil {
				owner.GenericArguments = make(map[string]string)
			}
			owner.GenericArguments[facts.QualifiedKey(ref.Base, params[pos])] = arg
			bound++
		}
	}

	return bound
}
