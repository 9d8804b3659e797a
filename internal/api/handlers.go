// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package api

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/directory"
)

// DirectoryLoader produces the location directory. *directory.Pipeline implements it.
type DirectoryLoader interface {
	Load(ctx context.Context) directory.View
	Records(ctx context.Context) ([]directory.RenderedRecord, error)
}

// BreakerState reports the upstream circuit breaker state (optional).
type BreakerState interface {
	State() gobreaker.State
}

// Handler contains dependencies for API handlers
type Handler struct {
	config    *config.Config
	directory DirectoryLoader
	breaker   BreakerState
	startTime time.Time
}

// NewHandler creates a new API handler. breaker may be nil when the circuit breaker is disabled.
func NewHandler(cfg *config.Config, dir DirectoryLoader, breaker BreakerState) *Handler {
	return &Handler{
		config:    cfg,
		directory: dir,
		breaker:   breaker,
		startTime: time.Now(),
	}
}
