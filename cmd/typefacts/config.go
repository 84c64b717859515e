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
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/typefacts/telemetry"
)

// configValidate is the validator instance for CLI configuration.
var configValidate = validator.New()

// Config is the CLI configuration, loaded from config.yaml.
//
// All fields have defaults; a missing config file is not an error.
type Config struct {
	// Source controls what gets scanned.
	Source SourceConfig `yaml:"source"`

	// Logging controls log output.
	Logging LoggingConfig `yaml:"logging"`

	// Registry controls registry limits.
	Registry RegistryConfig `yaml:"registry"`

	// Telemetry controls tracing and metrics (watch mode).
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// SourceConfig controls fact sources.
type SourceConfig struct {
	// Root is the default directory to scan for TypeScript sources.
	Root string `yaml:"root"`

	// Library is stamped on extracted facts; defaults to the file path.
	Library string `yaml:"library"`

	// FactsFiles are YAML fact files loaded in addition to scanned sources.
	FactsFiles []string `yaml:"facts_files"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"`
}

// RegistryConfig controls registry limits.
type RegistryConfig struct {
	// MaxTypes caps distinct type names. Zero keeps the default.
	MaxTypes int `yaml:"max_types" validate:"gte=0"`
}

// defaultConfig returns the configuration used when no config.yaml exists.
func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Root: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}

// loadConfig reads and validates the YAML config at path.
//
// A missing file yields defaults; a malformed or invalid file is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Source.Root == "" {
		cfg.Source.Root = "."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if err := configValidate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
