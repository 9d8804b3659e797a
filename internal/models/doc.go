// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
Package models defines the data structures shared across packages.

Model Categories:

1. Webflow CMS Models:
  - Item: a collection record with free-form fieldData
  - ItemList: one page of a collection
  - Pagination: the upstream paging block

2. API Response Models:
  - APIResponse: standard response wrapper for /api/v1 routes
  - APIError: error details
  - Metadata: response metadata (timestamp, timing)

Item fields are read defensively. Webflow does not enforce a schema on fieldData as
far as this service is concerned, so any missing or non-string field reads as "".

The gateway route is deliberately not wrapped in APIResponse: it relays the Webflow
payload byte-for-byte and uses its own error envelope.
*/
package models
