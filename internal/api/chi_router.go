// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/middleware"
)

// GatewayPath is where the Webflow proxy is mounted.
const GatewayPath = config.GatewayPath

// Router holds the handlers mounted by SetupChi.
type Router struct {
	handler       *Handler
	gateway       http.Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. corsOrigins applies to every route except the gateway.
func NewRouter(handler *Handler, gateway http.Handler, corsOrigins []string) *Router {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = corsOrigins

	return &Router{
		handler:       handler,
		gateway:       gateway,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	// ========================
	// Webflow Gateway
	// ========================
	// All methods reach the gateway: it answers OPTIONS and rejects the rest itself.
	r.Handle(GatewayPath, router.gateway)

	// ========================
	// Directory and API
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.CORS())
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(5, "text/html", "application/json"))

		r.Get("/locations", router.handler.LocationsPage)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/locations", router.handler.Locations)
			r.Get("/health/live", router.handler.HealthLive)
			r.Get("/health/ready", router.handler.HealthReady)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
