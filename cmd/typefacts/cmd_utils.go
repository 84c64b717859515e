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
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/AleutianAI/typefacts/extract"
	"github.com/AleutianAI/typefacts/facts"
	"github.com/AleutianAI/typefacts/registry"
)

// effectiveRoot returns the source root, preferring the positional
// argument, then the --root flag, then the config file.
func effectiveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if sourceRoot != "" {
		return sourceRoot
	}
	return config.Source.Root
}

// effectiveLibrary returns the library name to stamp on extracted
// facts, preferring the --library flag over the config file.
func effectiveLibrary() string {
	if libraryName != "" {
		return libraryName
	}
	return config.Source.Library
}

// effectiveFactsFiles merges fact files named on the command line with
// the ones listed in the config file.
func effectiveFactsFiles() []string {
	merged := make([]string, 0, len(factsFiles)+len(config.Source.FactsFiles))
	merged = append(merged, factsFiles...)
	merged = append(merged, config.Source.FactsFiles...)
	return merged
}

// collectFacts scans the source tree and loads any configured fact
// files, returning the combined fact list plus the scan result.
//
// Description:
//
//	Per-file extraction errors are logged as warnings and do not abort
//	the build. A failing fact file aborts, since the caller asked for
//	it explicitly.
func collectFacts(ctx context.Context, root string) ([]facts.TypeFact, *extract.ScanResult, error) {
	var extractorOpts []extract.ExtractorOption
	if lib := effectiveLibrary(); lib != "" {
		extractorOpts = append(extractorOpts, extract.WithLibrary(lib))
	}
	scanner := extract.NewScanner(
		extract.WithExtractor(extract.NewExtractor(extractorOpts...)),
	)

	result, err := scanner.Scan(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", root, err)
	}
	for _, scanErr := range result.Errors {
		logger.Warn("extraction error", "error", scanErr)
	}

	all := result.Facts
	for _, path := range effectiveFactsFiles() {
		loaded, err := loadFacts(path)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, loaded...)
	}
	return all, result, nil
}

// loadFacts loads a facts file, or every facts file in a directory.
func loadFacts(path string) ([]facts.TypeFact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("facts path %s: %w", path, err)
	}
	if info.IsDir() {
		return extract.LoadFactsDir(path)
	}
	return extract.LoadFactsFile(path)
}

// buildRegistry scans, loads, and registers everything into a fresh
// registry. Shared by the query, tree, export, and stats commands.
func buildRegistry(ctx context.Context, root string) (*registry.Registry, *extract.ScanResult) {
	all, result, err := collectFacts(ctx, root)
	if err != nil {
		log.Fatalf("Failed to collect type facts: %v", err)
	}

	var opts []registry.Option
	if config.Registry.MaxTypes > 0 {
		opts = append(opts, registry.WithMaxTypes(config.Registry.MaxTypes))
	}
	reg := registry.New(opts...)
	if _, err := reg.RegisterAll(all); err != nil {
		log.Fatalf("Failed to register type facts: %v", err)
	}
	logger.Info("registry built",
		"types", reg.Len(),
		"files_scanned", result.FilesScanned,
		"errors", len(result.Errors))
	return reg, result
}

// writeJSON marshals v with indentation and writes it to outputPath,
// or to stdout when no output file was requested.
func writeJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal output: %v", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outputPath, err)
	}
	fmt.Printf("Wrote %s\n", outputPath)
}
