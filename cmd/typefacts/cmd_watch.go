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
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AleutianAI/typefacts/extract"
	"github.com/AleutianAI/typefacts/telemetry"
	"github.com/spf13/cobra"
)

// runWatch keeps a registry live: it builds once, then rebuilds from
// scratch whenever a debounced batch of source changes arrives. A full
// rebuild is cheap at this scale and avoids incremental-update bugs
// around deleted or renamed types.
func runWatch(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown, err := telemetry.Init(ctx, config.Telemetry)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	if config.Telemetry.MetricExporter == "prometheus" {
		go serveMetrics(config.Telemetry.PrometheusPort)
	}

	root := effectiveRoot(args)
	reg, _ := buildRegistry(ctx, root)
	fmt.Printf("Watching %s (%d types). Press Ctrl+C to stop.\n", root, reg.Len())

	rebuild := func(changes []extract.FileChange) {
		for _, change := range changes {
			logger.Debug("source changed", "path", change.Path, "op", change.Op.String())
		}
		all, result, err := collectFacts(ctx, root)
		if err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		reg.Clear()
		if _, err := reg.RegisterAll(all); err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		fmt.Printf("Rebuilt: %d types from %d files (%d changes)\n",
			reg.Len(), result.FilesScanned, len(changes))
	}

	opts := extract.DefaultWatcherOptions()
	if watchWindow > 0 {
		opts.DebounceWindow = time.Duration(watchWindow) * time.Millisecond
	}
	watcher, err := extract.NewWatcher(root, rebuild, &opts)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}
	if err := watcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down.\n", sig)
	case <-ctx.Done():
	}
}

// serveMetrics exposes the Prometheus /metrics endpoint for watch mode.
func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.MetricsHandler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", "error", err)
	}
}
