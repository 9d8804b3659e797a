// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package models

import "time"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by the /api/v1 endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": "...", "name": "Austin", "href": "/locations/austin", ...}],
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 412, "count": 37}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// QueryTimeMS is the time spent collecting from Webflow; Count is set for list responses.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       *int      `json:"count,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - METHOD_NOT_ALLOWED: verb not supported by the route
//   - UPSTREAM_ERROR: the directory could not be collected
//   - NOT_READY: required configuration is missing
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
