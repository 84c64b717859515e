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
	"fmt"

	"github.com/spf13/cobra"
)

// runStats builds the registry and prints summary statistics.
func runStats(cmd *cobra.Command, args []string) {
	reg, result := buildRegistry(context.Background(), effectiveRoot(nil))
	stats := reg.Export().Statistics

	fmt.Printf("Files scanned:    %d\n", result.FilesScanned)
	fmt.Printf("Total types:      %d\n", stats.TotalTypes)
	fmt.Printf("With superclass:  %d\n", stats.WithSuperclass)
	fmt.Printf("With interfaces:  %d\n", stats.WithInterfaces)
	fmt.Printf("With mixins:      %d\n", stats.WithMixins)
	fmt.Printf("Generic types:    %d\n", stats.Generic)
	if len(result.Errors) > 0 {
		fmt.Printf("Extraction errors: %d\n", len(result.Errors))
	}
}
