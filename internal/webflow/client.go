// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
client.go - Webflow CMS REST API Client

Builds collection-items and single-item URLs and performs authenticated GETs.
Responses are returned raw (status, status text, body) so callers can relay them
unchanged; only transport failures surface as errors.

API Reference: https://developers.webflow.com/data/reference/cms
*/

package webflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
)

// Endpoint names used for metrics and logging.
const (
	EndpointCollectionItems = "collection_items"
	EndpointItem            = "item"
)

// maxBodyBytes bounds how much of an upstream body is buffered.
const maxBodyBytes = 32 << 20

// Request is one outbound call.
type Request struct {
	Endpoint string
	URL      string
}

// Response is the raw upstream answer.
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Upstream is the subset of the client the gateway depends on.
// Both Client and BreakerClient implement it.
type Upstream interface {
	CollectionItems(collectionID, offset, limit string) Request
	Item(collectionID, itemID string) Request
	Do(ctx context.Context, req Request) (*Response, error)
}

var _ Upstream = (*Client)(nil)

// Client provides access to the Webflow CMS API.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a client from the Webflow section of the configuration.
func NewClient(cfg *config.WebflowConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP lets tests and callers supply their own transport.
func NewClientWithHTTP(cfg *config.WebflowConfig, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		apiVersion: cfg.APIVersion,
		httpClient: httpClient,
	}
}

// CollectionItems addresses <base>/collections/<id>/items?offset=&limit=.
// offset and limit are forwarded verbatim; no parsing or clamping happens here.
func (c *Client) CollectionItems(collectionID, offset, limit string) Request {
	return Request{
		Endpoint: EndpointCollectionItems,
		URL: fmt.Sprintf("%s/collections/%s/items?offset=%s&limit=%s",
			c.baseURL, url.PathEscape(collectionID), url.QueryEscape(offset), url.QueryEscape(limit)),
	}
}

// Item addresses <base>/collections/<id>/items/<itemId>.
func (c *Client) Item(collectionID, itemID string) Request {
	return Request{
		Endpoint: EndpointItem,
		URL: fmt.Sprintf("%s/collections/%s/items/%s",
			c.baseURL, url.PathEscape(collectionID), url.PathEscape(itemID)),
	}
}

// Do performs the GET with the bearer credential and API version header attached.
// Any HTTP response, successful or not, is returned without error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("accept-version", c.apiVersion)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordUpstreamRequest(req.Endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordUpstreamRequest(req.Endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       body,
	}, nil
}

// statusText strips the numeric prefix from "404 Not Found".
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
