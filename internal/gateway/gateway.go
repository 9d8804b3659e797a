// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
Package gateway relays read-only requests to the Webflow CMS API.

The browser never sees the Webflow token: it calls the gateway with a collection and
optional item id, the gateway attaches the server-held credential, issues exactly one
upstream GET and relays the result.

Request flow:
 1. OPTIONS answers 200 with an empty body.
 2. Anything but GET is a MethodNotAllowedError (405).
 3. Missing token, or missing collection with no default, is a ConfigurationError (500).
 4. One upstream URL is built: the single-item endpoint when itemId is set,
    otherwise the collection-items endpoint with offset and limit copied verbatim.
 5. Non-2xx upstream responses become UpstreamError with the upstream status.
 6. A 2xx body must be JSON and is returned byte-for-byte with 200.
 7. Transport failures and malformed JSON become InternalError (500).

Every branch carries the same fixed CORS header set.
*/
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/webflow"
)

// Query parameter names and their defaults.
const (
	ParamCollectionID = "collectionId"
	ParamItemID       = "itemId"
	ParamOffset       = "offset"
	ParamLimit        = "limit"

	DefaultOffset = "0"
	DefaultLimit  = "100"
)

// Outcome labels for metrics and logging.
const (
	OutcomePreflight        = "preflight"
	OutcomeSuccess          = "success"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeConfiguration    = "configuration"
	OutcomeUpstream         = "upstream"
	OutcomeInternal         = "internal"
)

// corsHeaders is applied to every response regardless of outcome.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
	"Access-Control-Max-Age":       "86400",
	"Content-Type":                 "application/json",
}

// Result is a fully formed gateway response.
type Result struct {
	Status int
	Body   []byte
}

// Gateway is stateless per request; it holds only configuration and the upstream client.
type Gateway struct {
	token        string
	collectionID string
	upstream     webflow.Upstream
}

// New creates a gateway from an explicit configuration.
func New(cfg config.WebflowConfig, upstream webflow.Upstream) *Gateway {
	return &Gateway{
		token:        cfg.APIToken,
		collectionID: cfg.CollectionID,
		upstream:     upstream,
	}
}

// requestLog accumulates the single log line emitted per request.
type requestLog struct {
	method    string
	outcome   string
	url       string
	itemID    string
	itemCount int
	counted   bool
	status    int
	err       error
	start     time.Time
}

// Handle runs one request through the gateway.
func (g *Gateway) Handle(ctx context.Context, method string, query url.Values) Result {
	entry := &requestLog{method: method, start: time.Now()}
	result := g.handle(ctx, method, query, entry)
	entry.status = result.Status
	entry.emit(ctx)
	metrics.RecordGatewayOutcome(entry.outcome)
	return result
}

func (g *Gateway) handle(ctx context.Context, method string, query url.Values, entry *requestLog) Result {
	if method == http.MethodOptions {
		entry.outcome = OutcomePreflight
		return Result{Status: http.StatusOK}
	}
	if method != http.MethodGet {
		return g.fail(entry, OutcomeMethodNotAllowed, &MethodNotAllowedError{Method: method})
	}

	if g.token == "" {
		return g.fail(entry, OutcomeConfiguration, &ConfigurationError{Reason: ReasonTokenMissing})
	}
	collectionID := valueOr(query, ParamCollectionID, g.collectionID)
	if collectionID == "" {
		return g.fail(entry, OutcomeConfiguration, &ConfigurationError{Reason: ReasonCollectionMissing})
	}

	itemID := query.Get(ParamItemID)
	var req webflow.Request
	if itemID != "" {
		req = g.upstream.Item(collectionID, itemID)
	} else {
		req = g.upstream.CollectionItems(collectionID,
			valueOr(query, ParamOffset, DefaultOffset),
			valueOr(query, ParamLimit, DefaultLimit))
	}
	entry.url = req.URL

	resp, err := g.upstream.Do(ctx, req)
	if err != nil {
		return g.fail(entry, OutcomeInternal, &InternalError{Cause: err})
	}
	if !resp.OK() {
		return g.fail(entry, OutcomeUpstream, &UpstreamError{
			Code: resp.StatusCode,
			Text: resp.StatusText,
			Body: resp.Body,
		})
	}

	var payload json.RawMessage
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return g.fail(entry, OutcomeInternal, &InternalError{Cause: err})
	}

	entry.outcome = OutcomeSuccess
	if itemID != "" {
		entry.itemID = itemID
	} else {
		entry.itemCount, entry.counted = countItems(payload)
	}
	return Result{Status: http.StatusOK, Body: resp.Body}
}

func (g *Gateway) fail(entry *requestLog, outcome string, err error) Result {
	entry.outcome = outcome
	entry.err = err

	status, envelope := Envelope(err)
	body, mErr := json.Marshal(envelope)
	if mErr != nil {
		body = []byte(`{"error":"Internal server error"}`)
		status = http.StatusInternalServerError
	}
	return Result{Status: status, Body: body}
}

// ServeHTTP adapts the gateway to net/http.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := g.Handle(r.Context(), r.Method, r.URL.Query())

	h := w.Header()
	for k, v := range corsHeaders {
		h.Set(k, v)
	}
	w.WriteHeader(result.Status)
	if len(result.Body) > 0 {
		if _, err := w.Write(result.Body); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write gateway response")
		}
	}
}

func (e *requestLog) emit(ctx context.Context) {
	logger := logging.Ctx(ctx)

	event := logger.Info()
	switch e.outcome {
	case OutcomeInternal:
		event = logger.Error()
	case OutcomeUpstream, OutcomeConfiguration:
		event = logger.Warn()
	case OutcomePreflight:
		event = logger.Debug()
	}

	event = event.
		Str("method", e.method).
		Str("outcome", e.outcome).
		Int("status", e.status).
		Dur("duration", time.Since(e.start))
	if e.url != "" {
		event = event.Str("url", e.url)
	}
	if e.itemID != "" {
		event = event.Str("item_id", e.itemID)
	}
	if e.counted {
		event = event.Int("item_count", e.itemCount)
	}
	if e.err != nil {
		event = event.Err(e.err)
	}
	event.Msg("Gateway request")
}

// countItems reports len(items) when the payload is an object with an items array.
func countItems(payload json.RawMessage) (int, bool) {
	var probe struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.Items == nil {
		return 0, false
	}
	return len(*probe.Items), true
}

// valueOr treats an empty parameter the same as an absent one.
func valueOr(query url.Values, key, fallback string) string {
	if v := query.Get(key); v != "" {
		return v
	}
	return fallback
}
