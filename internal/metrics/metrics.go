// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Gateway Metrics
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Gateway requests by outcome",
		},
		[]string{"outcome"}, // preflight, success, method_not_allowed, configuration, upstream, internal
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webflow_request_duration_seconds",
			Help:    "Duration of upstream Webflow API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"}, // endpoint: collection_items, item
	)

	// Directory Pipeline Metrics
	DirectoryPageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_page_fetches_total",
			Help: "Collection pages fetched through the gateway",
		},
		[]string{"result"}, // success, failure
	)

	DirectoryReferenceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_reference_lookups_total",
			Help: "State reference resolutions by result",
		},
		[]string{"result"}, // hit, miss, skipped
	)

	DirectoryLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_load_duration_seconds",
			Help:    "Duration of full collect, resolve and render cycles",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"result"},
	)

	DirectoryItemsCollected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_items_collected",
			Help: "Number of items collected by the most recent load",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstreamRequest records one upstream call. status is 0 when no response arrived.
func RecordUpstreamRequest(endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestDuration.WithLabelValues(endpoint, label).Observe(duration.Seconds())
}

// RecordGatewayOutcome counts one gateway response.
func RecordGatewayOutcome(outcome string) {
	GatewayRequests.WithLabelValues(outcome).Inc()
}

// RecordDirectoryLoad records a complete pipeline run.
func RecordDirectoryLoad(itemCount int, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	} else {
		DirectoryItemsCollected.Set(float64(itemCount))
	}
	DirectoryLoadDuration.WithLabelValues(result).Observe(duration.Seconds())
}
