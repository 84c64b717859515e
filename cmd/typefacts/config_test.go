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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Source.Root != "." {
		t.Errorf("Source.Root = %q, want %q", cfg.Source.Root, ".")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Telemetry.ServiceName != "typefacts" {
		t.Errorf("Telemetry.ServiceName = %q, want %q", cfg.Telemetry.ServiceName, "typefacts")
	}
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
source:
  root: ./src
  library: dart:core
  facts_files:
    - facts/core.yaml
logging:
  level: debug
  quiet: true
registry:
  max_types: 5000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Source.Root != "./src" {
		t.Errorf("Source.Root = %q, want %q", cfg.Source.Root, "./src")
	}
	if cfg.Source.Library != "dart:core" {
		t.Errorf("Source.Library = %q, want %q", cfg.Source.Library, "dart:core")
	}
	if len(cfg.Source.FactsFiles) != 1 || cfg.Source.FactsFiles[0] != "facts/core.yaml" {
		t.Errorf("Source.FactsFiles = %v, want [facts/core.yaml]", cfg.Source.FactsFiles)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.Logging.Quiet {
		t.Error("Logging.Quiet = false, want true")
	}
	if cfg.Registry.MaxTypes != 5000 {
		t.Errorf("Registry.MaxTypes = %d, want 5000", cfg.Registry.MaxTypes)
	}
}

func TestLoadConfig_RejectsInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("loadConfig() error = nil, want validation error")
	}
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("loadConfig() error = nil, want parse error")
	}
}
