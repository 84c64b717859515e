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
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/typefacts/facts"
)

// FactsFile is the on-disk YAML schema for hand-authored type facts.
//
// Facts can be declared directly instead of extracted from source, which
// covers libraries whose source is not available:
//
//	library: "dart:core"
//	types:
//	  - name: Object
//	  - name: String
//	    superclass: Object
//	    interfaces: [Comparable, Pattern]
type FactsFile struct {
	// Library is the default library stamped on types that declare none.
	Library string `yaml:"library"`

	// Types are the declared type facts.
	Types []facts.TypeFact `yaml:"types"`
}

// LoadFactsFile reads and validates a YAML facts file.
//
// Inputs:
//   - path: Path to the YAML file.
//
// Outputs:
//   - []facts.TypeFact: Validated facts with Library defaulted from the
//     file header where unset.
//   - error: Non-nil if the file cannot be read, parsed, or any fact
//     fails validation. Wraps ErrInvalidFactsFile for schema problems.
func LoadFactsFile(path string) ([]facts.TypeFact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading facts file: %w", err)
	}

	loaded, err := ParseFactsFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loaded, nil
}

// LoadFactsDir loads every .yaml/.yml facts file directly under dir.
//
// Files load in lexical order so repeated names resolve the same way on
// every run. The directory itself must exist; an empty directory yields
// an empty slice.
func LoadFactsDir(dir string) ([]facts.TypeFact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading facts dir: %w", err)
	}

	var all []facts.TypeFact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		loaded, err := LoadFactsFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, loaded...)
	}
	return all, nil
}

// ParseFactsFile parses and validates YAML facts content.
func ParseFactsFile(data []byte) ([]facts.TypeFact, error) {
	var file FactsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFactsFile, err)
	}

	for i := range file.Types {
		if file.Types[i].Library == "" {
			file.Types[i].Library = file.Library
		}
		if err := file.Types[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: type %d: %v", ErrInvalidFactsFile, i, err)
		}
	}

	return file.Types, nil
}
