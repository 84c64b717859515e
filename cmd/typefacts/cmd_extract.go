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
	"log"

	"github.com/spf13/cobra"
)

// runExtract scans the source tree and prints the extracted facts as
// JSON without building a registry. Useful for producing fact files
// that other tools (or the --facts flag) consume later.
func runExtract(cmd *cobra.Command, args []string) {
	root := effectiveRoot(args)

	all, result, err := collectFacts(context.Background(), root)
	if err != nil {
		log.Fatalf("Failed to extract type facts: %v", err)
	}

	logger.Info("extraction complete",
		"types", len(all),
		"files_scanned", result.FilesScanned,
		"errors", len(result.Errors))
	writeJSON(all)
}
