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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/typefacts/facts"
)

// DefaultScanConcurrency is the number of files extracted in parallel.
const DefaultScanConcurrency = 8

// ScanResult aggregates extraction output across a source tree.
type ScanResult struct {
	// Facts are the extracted type facts, sorted ascending by name,
	// with generic-argument bindings already resolved.
	Facts []facts.TypeFact
	// FilesScanned is the number of source files extracted.
	FilesScanned int
	// Errors collects per-file problems. Scanning continues past them.
	Errors []string
}

// ScannerOption configures a Scanner instance.
type ScannerOption func(*Scanner)

// WithConcurrency sets the number of parallel extraction workers.
func WithConcurrency(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithExtractor sets the extractor used for each file.
func WithExtractor(e *Extractor) ScannerOption {
	return func(s *Scanner) {
		if e != nil {
			s.extractor = e
		}
	}
}

// Scanner walks a source tree and extracts type facts from every
// TypeScript file it finds.
//
// Description:
//
//	Files are extracted in parallel, then a sequential binding pass
//	resolves generic heritage arguments across file boundaries. Vendor,
//	node_modules, and hidden directories are skipped.
//
// Thread Safety:
//
//	Safe for concurrent use; each Scan call keeps its own state.
type Scanner struct {
	extractor   *Extractor
	concurrency int
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		extractor:   NewExtractor(),
		concurrency: DefaultScanConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan extracts type facts from every TypeScript file under root.
//
// Inputs:
//   - ctx: Context for cancellation. A canceled context stops the walk
//     and fails the scan.
//   - root: Directory to walk. Must exist.
//
// Outputs:
//   - *ScanResult: Aggregated facts sorted by name. Never nil on success.
//   - error: Non-nil if the walk itself fails or ctx is canceled.
//     Per-file extraction problems land in ScanResult.Errors instead.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.handles(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	result := &ScanResult{}
	var allRefs []HeritageRef
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, path := range paths {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
				mu.Unlock()
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)

			fileResult, err := s.extractor.Extract(gCtx, content, rel)
			if err != nil {
				if gCtx.Err() != nil {
					return err
				}
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Facts = append(result.Facts, fileResult.Facts...)
			allRefs = append(allRefs, fileResult.HeritageRefs...)
			for _, e := range fileResult.Errors {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", rel, e))
			}
			result.FilesScanned++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bound := BindGenericArguments(result.Facts, allRefs)

	sort.Slice(result.Facts, func(i, j int) bool {
		return result.Facts[i].Name < result.Facts[j].Name
	})

	slog.Debug("scan complete",
		slog.String("root", root),
		slog.Int("files", result.FilesScanned),
		slog.Int("facts", len(result.Facts)),
		slog.Int("bindings", bound),
		slog.Int("errors", len(result.Errors)))

	return result, nil
}

// handles reports whether the scanner extracts the given file.
func (s *Scanner) handles(path string) bool {
	for _, ext := range s.extractor.Extensions() {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
