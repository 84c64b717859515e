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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFactsYAML = `
library: "dart:core"
types:
  - name: Object
  - name: String
    superclass: Object
    interfaces: [Comparable, Pattern]
  - name: UserList
    library: app
    superclass: List
    generic_arguments:
      List.E: User
`

func TestParseFactsFile(t *testing.T) {
	loaded, err := ParseFactsFile([]byte(validFactsYAML))
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, "dart:core", loaded[0].Library)
	assert.Equal(t, []string{"Comparable", "Pattern"}, loaded[1].Interfaces)

	// A fact's own library wins over the file default.
	assert.Equal(t, "app", loaded[2].Library)
	assert.Equal(t, "User", loaded[2].GenericArguments["List.E"])
}

func TestParseFactsFile_InvalidYAML(t *testing.T) {
	_, err := ParseFactsFile([]byte("types: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidFactsFile)
}

func TestParseFactsFile_InvalidFact(t *testing.T) {
	_, err := ParseFactsFile([]byte(`
types:
  - superclass: Object
`))
	assert.ErrorIs(t, err, ErrInvalidFactsFile)
}

func TestLoadFactsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validFactsYAML), 0o644))

	loaded, err := LoadFactsFile(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestLoadFactsFile_Missing(t *testing.T) {
	_, err := LoadFactsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFactsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core.yaml"), []byte(validFactsYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yml"), []byte(`
types:
  - name: Widget
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	loaded, err := LoadFactsDir(dir)
	require.NoError(t, err)
	assert.Len(t, loaded, 4)
}

func TestLoadFactsDir_Missing(t *testing.T) {
	_, err := LoadFactsDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
