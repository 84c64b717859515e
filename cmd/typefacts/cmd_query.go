// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AleutianAI/typefacts/facts"
	"github.com/AleutianAI/typefacts/registry"
	"github.com/spf13/cobra"
)

// runQuery builds the registry and answers a single relationship
// query. The --kind flag selects the relation; the positional argument
// is the base type name (or, for generic queries, a
// "Base.Param=Concrete" binding).
func runQuery(cmd *cobra.Command, args []string) {
	target := args[0]
	reg, _ := buildRegistry(context.Background(), effectiveRoot(nil))

	var results []facts.TypeFact
	switch queryKind {
	case "subclasses":
		results = reg.FindSubclassesOf(target)
	case "implementers":
		results = reg.FindImplementersOf(target)
	case "mixin":
		results = reg.FindByMixin(target)
	case "any":
		results = reg.FindByAnyBase(strings.Split(target, ","))
	case "descendants":
		results = reg.FindAllDescendantsOf(target)
	case "generic":
		binding, concrete, ok := strings.Cut(target, "=")
		if !ok {
			log.Fatalf("Generic queries take the form Base.Param=Concrete, got %q", target)
		}
		base, param, ok := facts.SplitQualifiedKey(binding)
		if !ok {
			log.Fatalf("Generic queries take the form Base.Param=Concrete, got %q", target)
		}
		results = reg.FindByGenericArgument(base, param, concrete)
	default:
		log.Fatalf("Unknown query kind %q (want subclasses, implementers, mixin, any, descendants, or generic)", queryKind)
	}

	if jsonOutput {
		writeJSON(results)
		return
	}
	if len(results) == 0 {
		fmt.Println("No matching types.")
		return
	}
	for _, name := range registry.Names(results) {
		fmt.Println(name)
	}
}
