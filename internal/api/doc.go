// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
Package api wires the HTTP surface of the service onto a Chi router.

Routes:

	/api/webflow          Webflow proxy gateway (GET, OPTIONS)
	/locations            server-rendered location directory page
	/api/v1/locations     resolved locations as JSON
	/api/v1/health/live   liveness probe
	/api/v1/health/ready  readiness probe
	/metrics              Prometheus exposition

The gateway is mounted outside the CORS middleware. It writes its own fixed
Access-Control headers on every response, including failures, and must not have
them rewritten by origin negotiation.

Handlers are split across files:
  - handlers.go: Handler struct and constructor
  - handlers_helpers.go: JSON response helpers
  - handlers_health.go: liveness and readiness
  - handlers_locations.go: directory page and JSON listing
*/
package api
