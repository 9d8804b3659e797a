// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package api

import (
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
//
// Ready means the gateway has a token and default collection, and the Webflow
// circuit is not open. Webflow itself is not called.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	configured := h.config != nil && h.config.Webflow.GatewayReady()
	circuit := "disabled"
	circuitOpen := false
	if h.breaker != nil {
		state := h.breaker.State()
		circuit = state.String()
		circuitOpen = state == gobreaker.StateOpen
	}
	ready := configured && !circuitOpen

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	response := &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"webflow_configured": configured,
			"circuit_breaker":    circuit,
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	}
	if !ready {
		response.Error = &models.APIError{Code: ErrCodeNotReady, Message: notReadyReason(configured, circuitOpen)}
	}
	respondJSON(w, statusCode, response)
}

func notReadyReason(configured, circuitOpen bool) string {
	if !configured {
		return "Webflow API token or collection ID not configured"
	}
	if circuitOpen {
		return "Webflow circuit breaker is open"
	}
	return ""
}
