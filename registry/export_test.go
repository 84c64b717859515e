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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/typefacts/facts"
)

func TestExport_Statistics(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "Base"},
		{Name: "Sub", Superclass: "Base", Interfaces: []string{"Iface"}},
		{Name: "Mixed", Mixins: []string{"Mix"}, TypeParameters: []string{"T"}},
	})
	require.NoError(t, err)

	snap := reg.Export()

	assert.Equal(t, 3, snap.Statistics.TotalTypes)
	assert.Equal(t, 1, snap.Statistics.WithSuperclass)
	assert.Equal(t, 1, snap.Statistics.WithInterfaces)
	assert.Equal(t, 1, snap.Statistics.WithMixins)
	assert.Equal(t, 1, snap.Statistics.Generic)

	assert.Equal(t, []string{"Base", "Mixed", "Sub"}, Names(snap.Types))
	assert.NotEmpty(t, snap.SnapshotID)
	assert.Positive(t, snap.GeneratedAtMilli)
}

func TestExport_JSONRoundTrip(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(facts.TypeFact{
		Name:             "UserRepo",
		Library:          "repos",
		Superclass:       "Repository",
		GenericArguments: map[string]string{"Repository.T": "User"},
		Methods:          []facts.MethodFact{{Name: "save", ReturnType: "void", ParameterTypes: []string{"User"}}},
	}))

	data, err := json.Marshal(reg.Export())
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Types, 1)
	assert.Equal(t, "User", decoded.Types[0].GenericArguments["Repository.T"])
	assert.Equal(t, "save", decoded.Types[0].Methods[0].Name)
}

func TestExport_EmptyRegistry(t *testing.T) {
	snap := New().Export()

	assert.Equal(t, Statistics{}, snap.Statistics)
	assert.Empty(t, snap.Types)
}

func TestTypeMap_DefaultSelector(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "User"},
		{Name: "Admin"},
	})
	require.NoError(t, err)

	got := reg.TypeMap(nil)
	assert.Equal(t, map[string]string{"User": "User", "Admin": "Admin"}, got)
}

// Collisions are last-applied-wins over name-sorted iteration order.
func TestTypeMap_CollisionLastWins(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "Beta", Library: "shared"},
		{Name: "Alpha", Library: "shared"},
	})
	require.NoError(t, err)

	got := reg.TypeMap(func(f facts.TypeFact) string { return f.Library })
	assert.Equal(t, map[string]string{"shared": "Beta"}, got)
}

func TestTypeMap_CustomSelector(t *testing.T) {
	reg := New()
	_, err := reg.RegisterAll([]facts.TypeFact{
		{Name: "UserService"},
		{Name: "OrderService"},
	})
	require.NoError(t, err)

	got := reg.TypeMap(func(f facts.TypeFact) string {
		return strings.ToLower(f.Name)
	})
	assert.Equal(t, map[string]string{
		"userservice":  "UserService",
		"orderservice": "OrderService",
	}, got)
}
