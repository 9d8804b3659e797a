// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/directory"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// LocationsPage renders the full directory document.
// A failed load still renders the page, with only the error region filled, and answers 502.
func (h *Handler) LocationsPage(w http.ResponseWriter, r *http.Request) {
	view := h.directory.Load(r.Context())

	var buf bytes.Buffer
	if err := directory.RenderPage(&buf, view); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeRender, "Failed to render locations page", err)
		return
	}

	status := http.StatusOK
	if view.Error != "" {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write locations page")
	}
}

// Locations returns the resolved, sorted locations as JSON.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records, err := h.directory.Records(r.Context())
	if err != nil {
		respondError(w, r, http.StatusBadGateway, ErrCodeUpstream, "Failed to load locations. "+err.Error(), err)
		return
	}

	count := len(records)
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   records,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Count:       &count,
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}
