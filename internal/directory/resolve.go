// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// Field names read from location and state items.
const (
	FieldName   = "name"
	FieldSlug   = "slug"
	FieldCity   = "city"
	FieldState  = "state"
	FieldStatus = "location-status"
)

// abbreviationFields are tried in order on a state item.
var abbreviationFields = []string{"abbreviation", "abbr", "code", "name"}

// UnnamedLocation is displayed for items without a name.
const UnnamedLocation = "Unnamed Location"

// RenderedRecord is a location with its references resolved.
type RenderedRecord struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Slug              string           `json:"slug"`
	Href              string           `json:"href"`
	City              string           `json:"city,omitempty"`
	StateAbbreviation string           `json:"state,omitempty"`
	Status            StatusDescriptor `json:"status"`
}

// ResolveReferences resolves state and status for every item concurrently.
// The result has the same order as items.
func (p *Pipeline) ResolveReferences(ctx context.Context, items []models.Item, cache *ReferenceCache) []RenderedRecord {
	records := make([]RenderedRecord, len(items))

	var g errgroup.Group
	g.SetLimit(p.opts.LookupConcurrency)
	for i := range items {
		g.Go(func() error {
			records[i] = p.resolveOne(ctx, &items[i], cache)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return records
}

func (p *Pipeline) resolveOne(ctx context.Context, item *models.Item, cache *ReferenceCache) RenderedRecord {
	name := item.Name()
	if name == "" {
		name = UnnamedLocation
	}
	slug := item.Field(FieldSlug)
	href := "#"
	if slug != "" {
		href = p.opts.LinkPrefix + slug
	}

	return RenderedRecord{
		ID:                item.ID,
		Name:              name,
		Slug:              slug,
		Href:              href,
		City:              item.Field(FieldCity),
		StateAbbreviation: p.stateAbbreviation(ctx, item.Field(FieldState), cache),
		Status:            LookupStatus(item.Field(FieldStatus)),
	}
}

// stateAbbreviation resolves a state reference through the cache.
func (p *Pipeline) stateAbbreviation(ctx context.Context, stateID string, cache *ReferenceCache) string {
	if stateID == "" || p.opts.StatesCollectionID == "" {
		metrics.DirectoryReferenceLookups.WithLabelValues("skipped").Inc()
		return ""
	}

	abbr, hit := cache.GetOrPopulate(ctx, stateID, func(ctx context.Context) string {
		state := p.source.FetchItemByID(ctx, p.opts.StatesCollectionID, stateID)
		return state.FirstField(abbreviationFields...)
	})
	if hit {
		metrics.DirectoryReferenceLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.DirectoryReferenceLookups.WithLabelValues("miss").Inc()
	}
	return abbr
}
