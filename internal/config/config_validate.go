// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package config

import (
	"github.com/kkarnesdesigns/webflow-locations-api/internal/validation"
)

// Validate checks struct-level rules. Missing credentials are not an error here.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c)
}

// Warnings lists settings that leave part of the service degraded.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Webflow.APIToken == "" {
		warnings = append(warnings, "WEBFLOW_API_TOKEN is not set; every gateway request will fail with a configuration error")
	}
	if c.Webflow.CollectionID == "" {
		warnings = append(warnings, "WEBFLOW_COLLECTION_ID is not set; callers must pass collectionId")
	}
	if c.Webflow.StatesCollectionID == "" {
		warnings = append(warnings, "WEBFLOW_STATES_COLLECTION_ID is not set; state abbreviations will render empty")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && c.IsProduction() {
			warnings = append(warnings, "CORS_ORIGINS contains a wildcard in production")
			break
		}
	}
	return warnings
}
