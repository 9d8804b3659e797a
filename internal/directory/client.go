// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// Source is what the pipeline needs from the gateway.
type Source interface {
	FetchPage(ctx context.Context, offset, limit int) (*Page, error)
	FetchItemByID(ctx context.Context, collectionID, itemID string) *models.Item
}

var _ Source = (*GatewayClient)(nil)

// Page is one decoded collection page plus the raw gateway payload.
type Page struct {
	Items []models.Item
	Raw   json.RawMessage
}

// FetchError means the gateway answered a page request with a non-2xx status.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// GatewayClient calls the proxy gateway over HTTP.
type GatewayClient struct {
	gatewayURL string
	httpClient *http.Client
}

// NewGatewayClient creates a client for the gateway route at gatewayURL.
// A zero timeout leaves requests bounded only by ctx.
func NewGatewayClient(gatewayURL string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		gatewayURL: strings.TrimSuffix(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchPage requests one page of the default collection.
func (c *GatewayClient) FetchPage(ctx context.Context, offset, limit int) (*Page, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	status, body, err := c.get(ctx, params)
	if err != nil {
		metrics.DirectoryPageFetches.WithLabelValues("failure").Inc()
		return nil, err
	}
	if status < 200 || status >= 300 {
		metrics.DirectoryPageFetches.WithLabelValues("failure").Inc()
		return nil, newFetchError(status, body)
	}

	var list models.ItemList
	if err := json.Unmarshal(body, &list); err != nil {
		metrics.DirectoryPageFetches.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("decode page at offset %d: %w", offset, err)
	}
	metrics.DirectoryPageFetches.WithLabelValues("success").Inc()

	return &Page{Items: list.Items, Raw: body}, nil
}

// FetchItemByID requests a single item. Failures are logged and yield nil.
func (c *GatewayClient) FetchItemByID(ctx context.Context, collectionID, itemID string) *models.Item {
	params := url.Values{}
	params.Set("collectionId", collectionID)
	params.Set("itemId", itemID)

	logger := logging.Ctx(ctx)
	status, body, err := c.get(ctx, params)
	if err != nil {
		logger.Warn().Err(err).Str("collection_id", collectionID).Str("item_id", itemID).Msg("Reference lookup failed")
		return nil
	}
	if status < 200 || status >= 300 {
		logger.Warn().Int("status", status).Str("collection_id", collectionID).Str("item_id", itemID).Msg("Reference lookup returned non-success status")
		return nil
	}

	var item models.Item
	if err := json.Unmarshal(body, &item); err != nil {
		logger.Warn().Err(err).Str("item_id", itemID).Msg("Reference lookup returned malformed item")
		return nil
	}
	return &item
}

func (c *GatewayClient) get(ctx context.Context, params url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.gatewayURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body failed: %w", err)
	}
	return resp.StatusCode, body, nil
}

// newFetchError prefers the gateway's own error text.
func newFetchError(status int, body []byte) *FetchError {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &FetchError{Status: status, Message: envelope.Error}
	}
	return &FetchError{Status: status, Message: fmt.Sprintf("API request failed: %d", status)}
}
