// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

// StatusDescriptor is the badge shown for a location's status option.
type StatusDescriptor struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// DefaultStatusClass styles empty and unrecognized statuses.
const DefaultStatusClass = "status-coming-soon"

// UnknownStatusText is shown for a status option id missing from the table.
const UnknownStatusText = "Coming Soon"

// statusDescriptors maps Webflow option ids of the location-status field.
var statusDescriptors = map[string]StatusDescriptor{
	"6f1a2b3c4d5e6f708192a3b4c5d6e7f8": {Text: "Now Open", Class: "status-open"},
	"1c2d3e4f5a6b7c8d9e0fa1b2c3d4e5f6": {Text: "Coming Soon", Class: "status-coming-soon"},
	"9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d": {Text: "Temporarily Closed", Class: "status-closed"},
}

// LookupStatus resolves a location-status option id.
// An empty value yields empty text; an unknown id yields "Coming Soon". Both use the default class.
func LookupStatus(optionID string) StatusDescriptor {
	if optionID == "" {
		return StatusDescriptor{Class: DefaultStatusClass}
	}
	if d, ok := statusDescriptors[optionID]; ok {
		return d
	}
	return StatusDescriptor{Text: UnknownStatusText, Class: DefaultStatusClass}
}
