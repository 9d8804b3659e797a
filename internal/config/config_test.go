// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points every file source at an empty temp directory so the developer's
// own config.yaml or .env never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv(DotEnvPathEnvVar, "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Webflow.APIToken != "" {
		t.Errorf("Webflow.APIToken should be empty by default, got %q", cfg.Webflow.APIToken)
	}
	if cfg.Webflow.BaseURL != "https://api.webflow.com/v2" {
		t.Errorf("Webflow.BaseURL = %q, want https://api.webflow.com/v2", cfg.Webflow.BaseURL)
	}
	if cfg.Webflow.APIVersion != "1.0.0" {
		t.Errorf("Webflow.APIVersion = %q, want 1.0.0", cfg.Webflow.APIVersion)
	}
	if cfg.Directory.PageSize != 100 {
		t.Errorf("Directory.PageSize = %d, want 100", cfg.Directory.PageSize)
	}
	if cfg.Directory.MaxItems != 1000 {
		t.Errorf("Directory.MaxItems = %d, want 1000", cfg.Directory.MaxItems)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Directory.GatewayURL != "" {
		t.Errorf("Directory.GatewayURL should be derived, got %q", cfg.Directory.GatewayURL)
	}
	cfg.applyDerivedDefaults()
	if cfg.Directory.GatewayURL != "http://127.0.0.1:8080/api/webflow" {
		t.Errorf("Directory.GatewayURL = %q, want http://127.0.0.1:8080/api/webflow", cfg.Directory.GatewayURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadWithKoanfEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WEBFLOW_API_TOKEN", "secret-token")
	t.Setenv("WEBFLOW_COLLECTION_ID", "locations")
	t.Setenv("WEBFLOW_STATES_COLLECTION_ID", "states")
	t.Setenv("WEBFLOW_TIMEOUT", "5s")
	t.Setenv("DIRECTORY_PAGE_SIZE", "50")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Webflow.APIToken != "secret-token" {
		t.Errorf("APIToken = %q", cfg.Webflow.APIToken)
	}
	if cfg.Webflow.CollectionID != "locations" || cfg.Webflow.StatesCollectionID != "states" {
		t.Errorf("collections = %q/%q", cfg.Webflow.CollectionID, cfg.Webflow.StatesCollectionID)
	}
	if cfg.Webflow.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Webflow.Timeout)
	}
	if cfg.Directory.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.Directory.PageSize)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if !cfg.Webflow.GatewayReady() {
		t.Error("expected GatewayReady with token and collection set")
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := []byte("webflow:\n  collection_id: from-file\n  api_version: 2.0.0\ndirectory:\n  max_items: 250\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("WEBFLOW_API_VERSION", "3.0.0")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Webflow.CollectionID != "from-file" {
		t.Errorf("CollectionID = %q, want from-file", cfg.Webflow.CollectionID)
	}
	if cfg.Directory.MaxItems != 250 {
		t.Errorf("MaxItems = %d, want 250", cfg.Directory.MaxItems)
	}
	if cfg.Webflow.APIVersion != "3.0.0" {
		t.Errorf("environment should override file, got %q", cfg.Webflow.APIVersion)
	}
}

func TestLoadWithKoanfRejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("DIRECTORY_PAGE_SIZE", "500")
	t.Setenv("WEBFLOW_API_BASE_URL", "::not-a-url")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"directory.page_size", "webflow.base_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error %q", want, err.Error())
		}
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("WEBFLOW_COLLECTION_ID=dotenv-collection\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(DotEnvPathEnvVar, path)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("WEBFLOW_COLLECTION_ID", "")
	os.Unsetenv("WEBFLOW_COLLECTION_ID")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Webflow.CollectionID != "dotenv-collection" {
		t.Errorf("CollectionID = %q, want dotenv-collection", cfg.Webflow.CollectionID)
	}
	// godotenv.Load mutates the real environment; undo it for later tests.
	os.Unsetenv("WEBFLOW_COLLECTION_ID")
}

func TestLoadMissingDotEnvIsNotAnError(t *testing.T) {
	isolate(t)
	t.Setenv(DotEnvPathEnvVar, "does-not-exist.env")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"WEBFLOW_API_TOKEN":            "webflow.api_token",
		"WEBFLOW_STATES_COLLECTION_ID": "webflow.states_collection_id",
		"PORT":                         "server.port",
		"HTTP_PORT":                    "server.port",
		"LOG_LEVEL":                    "logging.level",
		"HOME":                         "",
		"PATH":                         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWarnings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Environment = "production"

	warnings := strings.Join(cfg.Warnings(), "\n")
	for _, want := range []string{"WEBFLOW_API_TOKEN", "WEBFLOW_COLLECTION_ID", "WEBFLOW_STATES_COLLECTION_ID", "wildcard"} {
		if !strings.Contains(warnings, want) {
			t.Errorf("expected warning mentioning %s, got:\n%s", want, warnings)
		}
	}

	cfg.Webflow.APIToken = "t"
	cfg.Webflow.CollectionID = "c"
	cfg.Webflow.StatesCollectionID = "s"
	cfg.Security.CORSOrigins = []string{"https://example.com"}
	if got := cfg.Warnings(); len(got) != 0 {
		t.Errorf("expected no warnings, got %v", got)
	}
}

func TestLoadWithKoanfGatewayURLFollowsPort(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"PORT", map[string]string{"PORT": "3000"}, "http://127.0.0.1:3000/api/webflow"},
		{"HTTP_PORT", map[string]string{"HTTP_PORT": "9191"}, "http://127.0.0.1:9191/api/webflow"},
		{"specific host", map[string]string{"HTTP_HOST": "10.0.0.5", "PORT": "3000"}, "http://10.0.0.5:3000/api/webflow"},
		{"explicit url wins", map[string]string{
			"PORT":                  "3000",
			"DIRECTORY_GATEWAY_URL": "https://proxy.example.com/api/webflow",
		}, "https://proxy.example.com/api/webflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for _, k := range []string{"PORT", "HTTP_PORT", "HTTP_HOST", "DIRECTORY_GATEWAY_URL"} {
				t.Setenv(k, "") // restores the original value on cleanup
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithKoanf()
			if err != nil {
				t.Fatalf("LoadWithKoanf() error = %v", err)
			}
			if cfg.Directory.GatewayURL != tt.want {
				t.Errorf("GatewayURL = %q, want %q (listen %s)", cfg.Directory.GatewayURL, tt.want, cfg.Server.Addr())
			}
		})
	}
}

func TestLocalGatewayURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"", "http://127.0.0.1:8080/api/webflow"},
		{"0.0.0.0", "http://127.0.0.1:8080/api/webflow"},
		{"::", "http://127.0.0.1:8080/api/webflow"},
		{"localhost", "http://localhost:8080/api/webflow"},
		{"::1", "http://[::1]:8080/api/webflow"},
	}
	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: 8080}
		if got := s.LocalGatewayURL(); got != tt.want {
			t.Errorf("LocalGatewayURL(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
