// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package monitoring registers the Prometheus metrics exposed on /metrics.
package monitoring

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitetrack_http_request_duration_seconds",
			Help:    "HTTP request handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	FoldersProvisioned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_folders_provisioned_total",
			Help: "Total project folder provisioning calls by outcome",
		},
		[]string{"outcome"},
	)
	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_emails_sent_total",
			Help: "Total notification emails by outcome",
		},
		[]string{"outcome"},
	)
)

// InitMetrics registers all collectors with the default registry. Duplicate
// registration is logged and skipped so tests can call this repeatedly.
func InitMetrics() {
	for _, c := range []prometheus.Collector{HTTPRequests, HTTPDuration, FoldersProvisioned, EmailsSent} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			slog.Error("failed to register metric", "error", err)
		}
	}
}
