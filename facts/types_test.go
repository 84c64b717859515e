// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package facts

import (
	"errors"
	"testing"
)

func TestQualifiedKey(t *testing.T) {
	if got := QualifiedKey("Repository", "T"); got != "Repository.T" {
		t.Errorf("QualifiedKey = %q, want %q", got, "Repository.T")
	}
}

func TestSplitQualifiedKey(t *testing.T) {
	tests := []struct {
		key      string
		base     string
		param    string
		wantOK   bool
	}{
		{"Repository.T", "Repository", "T", true},
		{"pkg.Repository.T", "pkg.Repository", "T", true},
		{"NoSeparator", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		base, param, ok := SplitQualifiedKey(tt.key)
		if ok != tt.wantOK || base != tt.base || param != tt.param {
			t.Errorf("SplitQualifiedKey(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.key, base, param, ok, tt.base, tt.param, tt.wantOK)
		}
	}
}

func TestGenericArgument(t *testing.T) {
	f := TypeFact{
		Name:             "UserRepo",
		GenericArguments: map[string]string{"Repository.T": "User"},
	}

	if got, ok := f.GenericArgument("Repository", "T"); !ok || got != "User" {
		t.Errorf("GenericArgument = (%q, %v), want (%q, true)", got, ok, "User")
	}
	if _, ok := f.GenericArgument("Repository", "E"); ok {
		t.Error("GenericArgument for unbound parameter: ok = true, want false")
	}
}

func TestIsGeneric(t *testing.T) {
	if (TypeFact{Name: "User"}).IsGeneric() {
		t.Error("plain type reported generic")
	}
	if !(TypeFact{Name: "List", TypeParameters: []string{"E"}}).IsGeneric() {
		t.Error("parameterized type not reported generic")
	}
}

func TestClone_Detached(t *testing.T) {
	orig := TypeFact{
		Name:             "UserRepo",
		Interfaces:       []string{"Repo"},
		Mixins:           []string{"Audited"},
		TypeParameters:   []string{"T"},
		GenericArguments: map[string]string{"Repository.T": "User"},
		Methods:          []MethodFact{{Name: "save", ParameterTypes: []string{"User"}}},
		Properties:       []string{"db"},
	}

	clone := orig.Clone()
	clone.Interfaces[0] = "mutated"
	clone.GenericArguments["Repository.T"] = "mutated"
	clone.Methods[0].ParameterTypes[0] = "mutated"
	clone.Properties[0] = "mutated"

	if orig.Interfaces[0] != "Repo" {
		t.Error("clone shares Interfaces backing array")
	}
	if orig.GenericArguments["Repository.T"] != "User" {
		t.Error("clone shares GenericArguments map")
	}
	if orig.Methods[0].ParameterTypes[0] != "User" {
		t.Error("clone shares method ParameterTypes backing array")
	}
	if orig.Properties[0] != "db" {
		t.Error("clone shares Properties backing array")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fact    TypeFact
		wantErr bool
	}{
		{"valid minimal", TypeFact{Name: "User"}, false},
		{"valid full", TypeFact{
			Name:             "UserRepo",
			GenericArguments: map[string]string{"Repository.T": "User"},
			Methods:          []MethodFact{{Name: "save"}},
		}, false},
		{"empty name", TypeFact{}, true},
		{"empty method name", TypeFact{
			Name:    "User",
			Methods: []MethodFact{{ReturnType: "void"}},
		}, true},
		{"unqualified generic key", TypeFact{
			Name:             "UserRepo",
			GenericArguments: map[string]string{"T": "User"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fact.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFact) {
					t.Errorf("Validate() = %v, want ErrInvalidFact", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
