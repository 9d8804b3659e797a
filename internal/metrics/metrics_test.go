// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// counterValue reads a counter through the client_model representation.
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordGatewayOutcome(t *testing.T) {
	c := GatewayRequests.WithLabelValues("upstream")
	before := counterValue(t, c)

	RecordGatewayOutcome("upstream")
	RecordGatewayOutcome("upstream")

	if got := counterValue(t, c) - before; got != 2 {
		t.Errorf("expected 2 increments, got %v", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/webflow", "404")
	before := counterValue(t, c)

	RecordAPIRequest("GET", "/api/webflow", 404, 15*time.Millisecond)

	if got := counterValue(t, c) - before; got != 1 {
		t.Errorf("expected 1 increment, got %v", got)
	}
}

func TestRecordDirectoryLoad(t *testing.T) {
	RecordDirectoryLoad(247, time.Second, nil)
	if got := gaugeValue(t, DirectoryItemsCollected); got != 247 {
		t.Errorf("DirectoryItemsCollected = %v, want 247", got)
	}

	// A failed load must not overwrite the last successful count.
	RecordDirectoryLoad(0, time.Second, errors.New("boom"))
	if got := gaugeValue(t, DirectoryItemsCollected); got != 247 {
		t.Errorf("DirectoryItemsCollected = %v after failure, want 247", got)
	}
}

func TestRecordUpstreamRequestNoResponse(t *testing.T) {
	// Must not panic with a zero status.
	RecordUpstreamRequest("item", 0, time.Millisecond)
	RecordUpstreamRequest("collection_items", 200, time.Millisecond)
}
