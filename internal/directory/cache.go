// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

import (
	"context"
	"sync"
)

// ReferenceCache memoizes state abbreviations for one load.
//
// The lock is released while fill runs, so two concurrent misses on the same key
// both call fill and the last write wins. Fills are idempotent lookups, so the
// duplicate is wasted work only. Entries are never evicted.
type ReferenceCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewReferenceCache returns an empty cache.
func NewReferenceCache() *ReferenceCache {
	return &ReferenceCache{entries: make(map[string]string)}
}

// Get returns the cached value for key.
func (c *ReferenceCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetOrPopulate returns the cached value for key, calling fill on a miss and storing
// its result. hit reports whether fill was skipped.
func (c *ReferenceCache) GetOrPopulate(ctx context.Context, key string, fill func(context.Context) string) (value string, hit bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}

	v := fill(ctx)

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, false
}

// Len is the number of distinct keys stored.
func (c *ReferenceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
