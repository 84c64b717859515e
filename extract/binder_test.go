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

import (
	"testing"

	"github.com/AleutianAI/typefacts/facts"
)

func TestBindGenericArguments(t *testing.T) {
	all := []facts.TypeFact{
		{Name: "Repository", TypeParameters: []string{"T", "K"}},
		{Name: "UserRepo", Superclass: "Repository"},
	}
	refs := []HeritageRef{
		{TypeName: "UserRepo", Base: "Repository", Arguments: []string{"User", "string"}},
	}

	bound := BindGenericArguments(all, refs)

	if bound != 2 {
		t.Errorf("bound = %d, want 2", bound)
	}
	got := all[1].GenericArguments
	if got["Repository.T"] != "User" || got["Repository.K"] != "string" {
		t.Errorf("GenericArguments = %v, want Repository.T=User Repository.K=string", got)
	}
}

func TestBindGenericArguments_UnknownBaseIgnored(t *testing.T) {
	all := []facts.TypeFact{
		{Name: "UserRepo", Superclass: "Repository"},
	}
	refs := []HeritageRef{
		{TypeName: "UserRepo", Base: "Repository", Arguments: []string{"User"}},
	}

	if bound := BindGenericArguments(all, refs); bound != 0 {
		t.Errorf("bound = %d, want 0", bound)
	}
	if all[0].GenericArguments != nil {
		t.Errorf("GenericArguments = %v, want nil", all[0].GenericArguments)
	}
}

func TestBindGenericArguments_SurplusArgumentsDropped(t *testing.T) {
	all := []facts.TypeFact{
		{Name: "Box", TypeParameters: []string{"T"}},
		{Name: "IntBox", Superclass: "Box"},
	}
	refs := []HeritageRef{
		{TypeName: "IntBox", Base: "Box", Arguments: []string{"number", "extra"}},
	}

	if bound := BindGenericArguments(all, refs); bound != 1 {
		t.Errorf("bound = %d, want 1", bound)
	}
	if got := all[1].GenericArguments["Box.T"]; got != "number" {
		t.Errorf("Box.T = %q, want %q", got, "number")
	}
	if len(all[1].GenericArguments) != 1 {
		t.Errorf("GenericArguments = %v, want single binding", all[1].GenericArguments)
	}
}
