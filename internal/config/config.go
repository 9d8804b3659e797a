// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

// Package config loads process-wide configuration once at startup.
//
// Sources are layered with koanf (highest priority last):
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, config.yaml, /etc/webflow-locations/config.yaml)
//  3. Environment variables, after a .env file is loaded outside production
//
// Config is immutable after Load and safe for concurrent reads.
//
// The Webflow API token and default collection id are deliberately not required here.
// Their absence is reported per request by the gateway as a configuration error, so a
// misconfigured deployment still answers with a readable JSON error instead of crash-looping.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// GatewayPath is the route the Webflow proxy is mounted on.
const GatewayPath = "/api/webflow"

// Config holds all application configuration.
type Config struct {
	Webflow   WebflowConfig   `koanf:"webflow"`
	Directory DirectoryConfig `koanf:"directory"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// WebflowConfig describes the upstream CMS API and the credential injected into every call.
type WebflowConfig struct {
	// APIToken is sent as a bearer credential and never exposed to browsers.
	APIToken string `koanf:"api_token"`

	// CollectionID is used when a caller does not pass collectionId.
	CollectionID string `koanf:"collection_id"`

	// StatesCollectionID addresses the reference collection used to resolve state
	// abbreviations. Empty disables reference resolution.
	StatesCollectionID string `koanf:"states_collection_id"`

	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	APIVersion string        `koanf:"api_version" validate:"required"`
	Timeout    time.Duration `koanf:"timeout" validate:"gte=0"`

	// BreakerEnabled wraps upstream transport in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// DirectoryConfig configures the aggregation and render pipeline.
type DirectoryConfig struct {
	// GatewayURL is the proxy route the pipeline reads from. Empty means this
	// process's own listener: loopback, server.port, GatewayPath.
	GatewayURL string `koanf:"gateway_url" validate:"required,url"`

	PageSize          int           `koanf:"page_size" validate:"min=1,max=100"`
	MaxItems          int           `koanf:"max_items" validate:"min=1"`
	LookupConcurrency int           `koanf:"lookup_concurrency" validate:"min=0"`
	LinkPrefix        string        `koanf:"link_prefix"`
	Timeout           time.Duration `koanf:"timeout" validate:"gte=0"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production test"`
}

// SecurityConfig holds CORS settings for routes other than the gateway, which always
// answers with its fixed wildcard header set.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadWithKoanf()
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GatewayReady reports whether the gateway can serve a request without an explicit collectionId.
func (w WebflowConfig) GatewayReady() bool {
	return w.APIToken != "" && w.CollectionID != ""
}

// applyDerivedDefaults fills values that depend on other settings.
func (c *Config) applyDerivedDefaults() {
	if c.Directory.GatewayURL == "" {
		c.Directory.GatewayURL = c.Server.LocalGatewayURL()
	}
}

// LocalGatewayURL addresses the gateway on this process's listener. Wildcard
// hosts are reached over loopback.
func (s ServerConfig) LocalGatewayURL() string {
	host := s.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port)) + GatewayPath
}
