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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/typefacts/facts"
)

func TestFindAllDescendantsOf_DirectAndTransitive(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "User"},
		{Name: "Admin", Superclass: "User"},
		{Name: "SuperAdmin", Superclass: "Admin"},
		{Name: "Root"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Admin", "SuperAdmin"}, reg.DescendantNames("User"))
	assert.Equal(t, []string{"SuperAdmin"}, reg.DescendantNames("Admin"))
	assert.Empty(t, reg.DescendantNames("Root"))
	assert.Empty(t, reg.DescendantNames("Unknown"))
}

// Descendants follow all three relation kinds, not just superclass.
func TestFindAllDescendantsOf_MixedRelationKinds(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "Serializable"},
		{Name: "Entity", Interfaces: []string{"Serializable"}},
		{Name: "Timestamped", Mixins: []string{"Entity"}},
		{Name: "AuditLog", Superclass: "Timestamped"},
	})
	require.NoError(t, err)

	got := reg.DescendantNames("Serializable")
	assert.Equal(t, []string{"AuditLog", "Entity", "Timestamped"}, got)
}

// A name reachable over several paths or relation kinds appears once.
func TestFindAllDescendantsOf_Diamond(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "Top"},
		{Name: "Left", Superclass: "Top"},
		{Name: "Right", Interfaces: []string{"Top"}},
		{Name: "Bottom", Superclass: "Left", Interfaces: []string{"Right", "Top"}},
	})
	require.NoError(t, err)

	got := reg.DescendantNames("Top")
	assert.Equal(t, []string{"Bottom", "Left", "Right"}, got)
}

// Malformed cyclic relation data must not hang the traversal, and a type is
// never its own descendant.
func TestFindAllDescendantsOf_CycleTerminates(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "A", Superclass: "C"},
		{Name: "B", Superclass: "A"},
		{Name: "C", Superclass: "B"},
	})
	require.NoError(t, err)

	got := reg.DescendantNames("A")
	assert.Equal(t, []string{"B", "C"}, got)
	assert.NotContains(t, got, "A")
}

// Worked example from the schema documentation: Root is unrelated and must
// be excluded.
func TestFindAllDescendantsOf_ExcludesUnrelated(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "User"},
		{Name: "Admin", Superclass: "User"},
		{Name: "Root"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Admin"}, Names(reg.FindSubclassesOf("User")))
	assert.Equal(t, []string{"Admin"}, reg.DescendantNames("User"))
}
