// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package models

import "strings"

// Item is a CMS record. Field values are read defensively: anything that is not a
// JSON string reads as "".
type Item struct {
	ID        string                 `json:"id"`
	FieldData map[string]interface{} `json:"fieldData"`
}

// Field returns the string value of name, or "" when absent or not a string.
func (i *Item) Field(name string) string {
	if i == nil || i.FieldData == nil {
		return ""
	}
	if s, ok := i.FieldData[name].(string); ok {
		return s
	}
	return ""
}

// FirstField returns the first non-empty value among names, in order.
func (i *Item) FirstField(names ...string) string {
	for _, name := range names {
		if v := i.Field(name); v != "" {
			return v
		}
	}
	return ""
}

// Name is the display name used for sorting and rendering.
func (i *Item) Name() string {
	return i.Field("name")
}

// SortKey is the case-folded display name.
func (i *Item) SortKey() string {
	return strings.ToLower(i.Name())
}

// ItemList is one page of a collection as returned by the collection-items endpoint.
type ItemList struct {
	Items      []Item      `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is the upstream paging block. The pipeline does not rely on it;
// the end of a collection is inferred from a short page.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}
