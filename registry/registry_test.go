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
	"errors"
	"testing"

	"github.com/AleutianAI/typefacts/facts"
)

// Helper to build a fact with just hierarchy relations.
func makeFact(name, superclass string, interfaces ...string) facts.TypeFact {
	return facts.TypeFact{
		Name:       name,
		Library:    "test_lib",
		Superclass: superclass,
		Interfaces: interfaces,
	}
}

func TestRegistry_RegisterAndFindByName(t *testing.T) {
	reg := New()

	fact := makeFact("User", "")
	if err := reg.Register(fact); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := reg.FindByName("User")
	if !ok {
		t.Fatal("FindByName(User) not found after Register")
	}
	if got.Name != "User" || got.Library != "test_lib" {
		t.Errorf("FindByName(User) = %+v, expected registered fact", got)
	}

	if _, ok := reg.FindByName("Ghost"); ok {
		t.Error("FindByName(Ghost) found, expected absence")
	}

	if reg.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", reg.Len())
	}
}

func TestRegistry_RegisterReplacesForPointLookup(t *testing.T) {
	reg := New()

	first := makeFact("Widget", "Base")
	first.Properties = []string{"width"}
	second := makeFact("Widget", "Base")
	second.Properties = []string{"width", "height"}

	if err := reg.Register(first); err != nil {
		t.Fatalf("Register(first) error = %v", err)
	}
	if err := reg.Register(second); err != nil {
		t.Fatalf("Register(second) error = %v", err)
	}

	got, ok := reg.FindByName("Widget")
	if !ok {
		t.Fatal("FindByName(Widget) not found")
	}
	if len(got.Properties) != 2 {
		t.Errorf("FindByName(Widget).Properties = %v, expected replacement fact", got.Properties)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after re-registration, expected 1", reg.Len())
	}
}

// Re-registering a name with changed relations must not leave stale
// reverse-index entries behind.
func TestRegistry_ReRegisterUpdatesReverseIndexes(t *testing.T) {
	reg := New()

	original := facts.TypeFact{
		Name:       "Service",
		Superclass: "OldBase",
		Interfaces: []string{"Closeable"},
		Mixins:     []string{"LoggingMixin"},
	}
	if err := reg.Register(original); err != nil {
		t.Fatalf("Register(original) error = %v", err)
	}

	replacement := facts.TypeFact{
		Name:       "Service",
		Superclass: "NewBase",
		Interfaces: []string{"Disposable"},
	}
	if err := reg.Register(replacement); err != nil {
		t.Fatalf("Register(replacement) error = %v", err)
	}

	checks := []struct {
		desc string
		got  []facts.TypeFact
		want int
	}{
		{"FindSubclassesOf(OldBase)", reg.FindSubclassesOf("OldBase"), 0},
		{"FindSubclassesOf(NewBase)", reg.FindSubclassesOf("NewBase"), 1},
		{"FindImplementersOf(Closeable)", reg.FindImplementersOf("Closeable"), 0},
		{"FindImplementersOf(Disposable)", reg.FindImplementersOf("Disposable"), 1},
		{"FindByMixin(LoggingMixin)", reg.FindByMixin("LoggingMixin"), 0},
	}
	for _, tc := range checks {
		if len(tc.got) != tc.want {
			t.Errorf("%s returned %d facts, expected %d", tc.desc, len(tc.got), tc.want)
		}
	}
}

func TestRegistry_RegisterAllOrderPreserving(t *testing.T) {
	reg := New()

	all := []facts.TypeFact{
		makeFact("A", ""),
		{Name: "A", Library: "later"}, // last write wins
		makeFact("B", "A"),
	}

	n, err := reg.RegisterAll(all)
	if err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RegisterAll() applied %d, expected 3", n)
	}

	got, _ := reg.FindByName("A")
	if got.Library != "later" {
		t.Errorf("FindByName(A).Library = %q, expected last-registered fact to win", got.Library)
	}
}

func TestRegistry_MaxTypesExceeded(t *testing.T) {
	reg := New(WithMaxTypes(2))

	if err := reg.Register(makeFact("A", "")); err != nil {
		t.Fatalf("Register(A) error = %v", err)
	}
	if err := reg.Register(makeFact("B", "")); err != nil {
		t.Fatalf("Register(B) error = %v", err)
	}

	err := reg.Register(makeFact("C", ""))
	if !errors.Is(err, ErrMaxTypesExceeded) {
		t.Errorf("Register(C) error = %v, expected ErrMaxTypesExceeded", err)
	}

	// Overwriting an existing name at capacity is not an insert.
	if err := reg.Register(makeFact("A", "B")); err != nil {
		t.Errorf("Register(A) overwrite at capacity error = %v, expected nil", err)
	}
}

func TestRegistry_Clear(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		makeFact("User", ""),
		makeFact("Admin", "User", "Auditable"),
	})
	if err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}

	reg.Clear()

	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Clear, expected 0", reg.Len())
	}
	if _, ok := reg.FindByName("User"); ok {
		t.Error("FindByName(User) found after Clear")
	}
	if got := reg.FindSubclassesOf("User"); len(got) != 0 {
		t.Errorf("FindSubclassesOf(User) returned %d facts after Clear, expected 0", len(got))
	}
	if got := reg.FindImplementersOf("Auditable"); len(got) != 0 {
		t.Errorf("FindImplementersOf(Auditable) returned %d facts after Clear, expected 0", len(got))
	}

	// A cleared registry accepts fresh registrations.
	if err := reg.Register(makeFact("User", "")); err != nil {
		t.Errorf("Register() after Clear error = %v", err)
	}
}

// Registry instances must not share state.
func TestRegistry_IndependentInstances(t *testing.T) {
	a := New()
	b := New()

	if err := a.Register(makeFact("OnlyInA", "")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, ok := b.FindByName("OnlyInA"); ok {
		t.Error("fact registered in one registry visible in another")
	}
}

// Query results are copies: mutating them must not reach registry state.
func TestRegistry_ResultsAreDetached(t *testing.T) {
	reg := New()
	fact := facts.TypeFact{
		Name:             "Repo",
		GenericArguments: map[string]string{"Repository.T": "User"},
		Interfaces:       []string{"Closeable"},
	}
	if err := reg.Register(fact); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, _ := reg.FindByName("Repo")
	got.GenericArguments["Repository.T"] = "Mutated"
	got.Interfaces[0] = "Mutated"

	fresh, _ := reg.FindByName("Repo")
	if fresh.GenericArguments["Repository.T"] != "User" {
		t.Error("mutating a returned fact's generic arguments leaked into the registry")
	}
	if fresh.Interfaces[0] != "Closeable" {
		t.Error("mutating a returned fact's interfaces leaked into the registry")
	}
}
