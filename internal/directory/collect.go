// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

import (
	"context"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// CollectAll pages through the collection and returns every item sorted by name.
//
// Paging starts at offset 0 and advances by the page size. It stops at the first
// short page, or when MaxItems is reached; the latter truncates and logs a warning
// even though more items may exist upstream.
func (p *Pipeline) CollectAll(ctx context.Context) ([]models.Item, error) {
	limit := p.opts.PageSize
	var items []models.Item

	for offset := 0; ; offset += limit {
		page, err := p.source.FetchPage(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if len(page.Items) < limit {
			break
		}
		if len(items) >= p.opts.MaxItems {
			logging.Ctx(ctx).Warn().
				Int("max_items", p.opts.MaxItems).
				Int("next_offset", offset+limit).
				Msg("Reached location limit, remaining items were not fetched")
			items = items[:p.opts.MaxItems]
			break
		}
	}

	sortByName(items)
	return items, nil
}

// sortByName orders items by display name, case-insensitively, with English collation.
// The sort is stable; items without a name sort as "".
func sortByName(items []models.Item) {
	// collate.Collator is not safe for concurrent use.
	c := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(items, func(a, b models.Item) int {
		return c.CompareString(a.SortKey(), b.SortKey())
	})
}
