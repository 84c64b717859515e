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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath  string
	sourceRoot  string
	libraryName string
	factsFiles  []string
	outputPath  string
	jsonOutput  bool
	queryKind   string
	watchWindow int

	rootCmd = &cobra.Command{
		Use:   "typefacts",
		Short: "A build-time type relationship index for TypeScript codebases",
		Long: `typefacts extracts class and interface facts from TypeScript
sources (and YAML fact files), builds an in-memory relationship
registry, and answers inheritance, interface, mixin, and
generic-argument queries over it.

Examples:
  typefacts extract ./src --library my-app -o facts.json
  typefacts query Widget --kind descendants
  typefacts query Repository.T=User --kind generic
  typefacts tree StatelessWidget
  typefacts export -o snapshot.json
  typefacts watch ./src`,
	}

	// --- Extraction ---
	extractCmd = &cobra.Command{
		Use:   "extract [path]",
		Short: "Extract type facts from a source tree and print them",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExtract, // Defined in cmd_extract.go
	}

	// --- Queries ---
	queryCmd = &cobra.Command{
		Use:   "query [base-or-predicate]",
		Short: "Query type relationships (subclasses, implementers, mixins, descendants, generics)",
		Args:  cobra.ExactArgs(1),
		Run:   runQuery, // Defined in cmd_query.go
	}

	treeCmd = &cobra.Command{
		Use:   "tree [root-type]",
		Short: "Render the subclass hierarchy under a type as an ASCII tree",
		Args:  cobra.ExactArgs(1),
		Run:   runTree, // Defined in cmd_tree.go
	}

	// --- Derived Views ---
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export a registry snapshot with statistics as JSON",
		Run:   runExport, // Defined in cmd_export.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics for the scanned sources",
		Run:   runStats, // Defined in cmd_stats.go
	}

	// --- Watch Mode ---
	watchCmd = &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-extract and rebuild the registry when sources change",
		Args:  cobra.MaximumNArgs(1),
		Run:   runWatch, // Defined in cmd_watch.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&sourceRoot, "root", "",
		"Source tree to scan (overrides config)")
	rootCmd.PersistentFlags().StringVar(&libraryName, "library", "",
		"Library name stamped on extracted facts (overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&factsFiles, "facts", nil,
		"YAML fact files (or directories of them) to load in addition to scanned sources")

	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write JSON output to a file instead of stdout")

	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryKind, "kind", "k", "descendants",
		"Query kind: subclasses, implementers, mixin, any, descendants, or generic (base.param=concrete)")
	queryCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Print full facts as JSON instead of names")

	rootCmd.AddCommand(treeCmd)

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the snapshot to a file instead of stdout")

	rootCmd.AddCommand(statsCmd)

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchWindow, "debounce-ms", 250,
		"Debounce window in milliseconds for change batches")
}
