// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
Package main is the entry point for the Webflow Locations API server.

The server relays read-only Webflow CMS requests through a single proxy route so
the API token never reaches the browser, and renders a location directory from
the collection behind that route.

# Application Architecture

	RootSupervisor ("webflow-locations")
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 with .env, YAML and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Upstream client: Webflow CMS client, optionally behind a circuit breaker
 4. Gateway: /api/webflow proxy route
 5. Directory: paging, reference resolution and rendering through the gateway
 6. Supervisor Tree: suture v4 process supervision
 7. HTTP Server: chi router with middleware stack

# Routes

	GET /api/webflow               proxy to the Webflow collection (fixed CORS headers)
	GET /locations                 HTML location directory
	GET /api/v1/locations          directory records as JSON
	GET /api/v1/health/live        liveness
	GET /api/v1/health/ready       readiness (token, collection, breaker)
	GET /metrics                   prometheus exposition

# Configuration

	WEBFLOW_API_TOKEN              Webflow API token (required per request)
	WEBFLOW_COLLECTION_ID          default locations collection
	WEBFLOW_STATES_COLLECTION_ID   states collection for reference lookups
	DIRECTORY_GATEWAY_URL          URL the directory uses to reach the gateway
	                               (default: loopback on HTTP_PORT/PORT)
	HTTP_PORT                      listen port (default 8080)
	LOG_LEVEL, LOG_FORMAT          logging

A missing token or collection id does not stop the server: the gateway answers
with a configuration error and readiness reports not ready.

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server service drains
in-flight requests within the configured shutdown timeout.
*/
package main
