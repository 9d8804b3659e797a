// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/directory"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/gateway"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/webflow"
)

type stubDirectory struct {
	records []directory.RenderedRecord
	err     error
}

func (s *stubDirectory) Records(context.Context) ([]directory.RenderedRecord, error) {
	return s.records, s.err
}

func (s *stubDirectory) Load(ctx context.Context) directory.View {
	records, err := s.Records(ctx)
	if err != nil {
		return directory.View{Error: "Failed to load locations. " + err.Error()}
	}
	content, err := directory.RenderRecords(records)
	if err != nil {
		return directory.View{Error: "Failed to load locations. " + err.Error()}
	}
	return directory.View{Content: content, Records: records}
}

type stubBreaker struct{ state gobreaker.State }

func (s stubBreaker) State() gobreaker.State { return s.state }

func testConfig() *config.Config {
	return &config.Config{
		Webflow: config.WebflowConfig{
			APIToken:     "token",
			CollectionID: "locations",
			BaseURL:      "https://api.webflow.com/v2",
			APIVersion:   "1.0.0",
		},
	}
}

func newTestRouter(cfg *config.Config, dir DirectoryLoader, breaker BreakerState) http.Handler {
	gw := gateway.New(cfg.Webflow, webflow.NewClient(&cfg.Webflow))
	return NewRouter(NewHandler(cfg, dir, breaker), gw, []string{"https://example.com"}).SetupChi()
}

func serve(h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealthLive(t *testing.T) {
	h := newTestRouter(testConfig(), &stubDirectory{}, nil)
	rec := serve(h, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Status != models.StatusSuccess {
		t.Errorf("expected success status, got %q", resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestHealthReady(t *testing.T) {
	unconfigured := testConfig()
	unconfigured.Webflow.APIToken = ""

	tests := []struct {
		name    string
		cfg     *config.Config
		breaker BreakerState
		want    int
	}{
		{"configured without breaker", testConfig(), nil, http.StatusOK},
		{"configured closed breaker", testConfig(), stubBreaker{gobreaker.StateClosed}, http.StatusOK},
		{"open breaker", testConfig(), stubBreaker{gobreaker.StateOpen}, http.StatusServiceUnavailable},
		{"missing token", unconfigured, nil, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(tt.cfg, &stubDirectory{}, tt.breaker)
			rec := serve(h, http.MethodGet, "/api/v1/health/ready", nil)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			resp := decodeResponse(t, rec)
			if tt.want != http.StatusOK && (resp.Error == nil || resp.Error.Code != ErrCodeNotReady) {
				t.Errorf("expected %s error, got %+v", ErrCodeNotReady, resp.Error)
			}
		})
	}
}

func TestLocations_JSON(t *testing.T) {
	dir := &stubDirectory{records: []directory.RenderedRecord{
		{ID: "1", Name: "Austin", Href: "/locations/austin", StateAbbreviation: "TX"},
		{ID: "2", Name: "Boise", Href: "#"},
	}}
	h := newTestRouter(testConfig(), dir, nil)

	rec := serve(h, http.MethodGet, "/api/v1/locations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Metadata.Count == nil || *resp.Metadata.Count != 2 {
		t.Errorf("expected count 2, got %v", resp.Metadata.Count)
	}
	if !strings.Contains(rec.Body.String(), `"state":"TX"`) {
		t.Errorf("expected state abbreviation in body: %s", rec.Body.String())
	}
}

func TestLocations_UpstreamFailure(t *testing.T) {
	dir := &stubDirectory{err: errors.New("API request failed: 502")}
	h := newTestRouter(testConfig(), dir, nil)

	rec := serve(h, http.MethodGet, "/api/v1/locations", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeUpstream {
		t.Fatalf("expected %s error, got %+v", ErrCodeUpstream, resp.Error)
	}
	if resp.Error.Message != "Failed to load locations. API request failed: 502" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}

func TestLocationsPage(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		dir := &stubDirectory{records: []directory.RenderedRecord{{Name: "Austin", Href: "/locations/austin"}}}
		rec := serve(newTestRouter(testConfig(), dir, nil), http.MethodGet, "/locations", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("unexpected content type %q", ct)
		}
		body := rec.Body.String()
		for _, want := range []string{`id="loading"`, `id="error-message"`, `id="locations-container"`, "Austin"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %q in page", want)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		rec := serve(newTestRouter(testConfig(), &stubDirectory{}, nil), http.MethodGet, "/locations", nil)
		if !strings.Contains(rec.Body.String(), directory.NoLocationsText) {
			t.Errorf("expected placeholder in page:\n%s", rec.Body.String())
		}
	})

	t.Run("failure", func(t *testing.T) {
		dir := &stubDirectory{err: errors.New("Server configuration error. API token not configured.")}
		rec := serve(newTestRouter(testConfig(), dir, nil), http.MethodGet, "/locations", nil)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Failed to load locations. Server configuration error. API token not configured.") {
			t.Errorf("expected error message in page:\n%s", rec.Body.String())
		}
	})
}

func TestGatewayMountedOutsideCORS(t *testing.T) {
	h := newTestRouter(testConfig(), &stubDirectory{}, nil)

	// A preflight from an origin the CORS policy does not list still gets the gateway's headers.
	rec := serve(h, http.MethodOptions, GatewayPath, map[string]string{
		"Origin":                        "https://not-allowed.example",
		"Access-Control-Request-Method": "GET",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("unexpected allow-methods %q", got)
	}

	rec = serve(h, http.MethodDelete, GatewayPath, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 from gateway, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Only GET requests are supported") {
		t.Errorf("expected gateway envelope, got %s", rec.Body.String())
	}
}

func TestCORS_NonGatewayRoutes(t *testing.T) {
	h := newTestRouter(testConfig(), &stubDirectory{}, nil)

	rec := serve(h, http.MethodGet, "/api/v1/health/live", map[string]string{"Origin": "https://example.com"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("expected configured origin, got %q", got)
	}

	rec = serve(h, http.MethodGet, "/api/v1/health/live", map[string]string{"Origin": "https://evil.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unlisted origin, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(testConfig(), &stubDirectory{}, nil)
	serve(h, http.MethodGet, "/api/v1/health/live", nil)

	rec := serve(h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("expected api_requests_total in exposition")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("unexpected %q", got)
	}
}
