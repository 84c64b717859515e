// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for registry operations.
var meter = otel.Meter("typefacts.registry")

// Metrics for ingestion and query operations.
var (
	registrationsTotal metric.Int64Counter
	queryLatency       metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		registrationsTotal, err = meter.Int64Counter(
			"registry_registrations_total",
			metric.WithDescription("Total number of facts registered"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		queryLatency, err = meter.Float64Histogram(
			"registry_query_duration_seconds",
			metric.WithDescription("Duration of registry query operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// observeRegister records n fact registrations. No-op if metrics init failed.
func observeRegister(n int64) {
	if initMetrics() != nil {
		return
	}
	registrationsTotal.Add(context.Background(), n)
}

// observeQuery records the latency of one query operation, labeled by
// operation name. Intended as `defer observeQuery("subclasses", time.Now())`.
func observeQuery(op string, start time.Time) {
	if initMetrics() != nil {
		return
	}
	queryLatency.Record(context.Background(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", op)))
}
