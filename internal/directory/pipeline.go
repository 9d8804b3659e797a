// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

/*
Package directory builds the location directory from the proxy gateway.

A load collects every page of the locations collection, sorts it by name, resolves
each location's state reference and status option, and renders the result into the
three regions of the directory page: the loading indicator, the error message and
the locations container.

State abbreviations come from a second collection and are memoized per load in a
ReferenceCache. Reference failures degrade that field to "" and never fail the load;
a failure to collect the collection itself fails the whole load and nothing partial
is shown.
*/
package directory

import (
	"context"
	"html/template"
	"time"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/models"
)

// Options tune a Pipeline. Zero values take the defaults.
type Options struct {
	PageSize           int
	MaxItems           int
	LookupConcurrency  int
	StatesCollectionID string
	LinkPrefix         string
}

// Defaults used when Options leaves a value unset.
const (
	DefaultPageSize          = 100
	DefaultMaxItems          = 1000
	DefaultLookupConcurrency = 10
	DefaultLinkPrefix        = "/locations/"
)

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxItems <= 0 {
		o.MaxItems = DefaultMaxItems
	}
	if o.LookupConcurrency <= 0 {
		o.LookupConcurrency = DefaultLookupConcurrency
	}
	if o.LinkPrefix == "" {
		o.LinkPrefix = DefaultLinkPrefix
	}
	return o
}

// OptionsFromConfig maps the configuration sections onto Options.
func OptionsFromConfig(wf *config.WebflowConfig, dir *config.DirectoryConfig) Options {
	return Options{
		PageSize:           dir.PageSize,
		MaxItems:           dir.MaxItems,
		LookupConcurrency:  dir.LookupConcurrency,
		StatesCollectionID: wf.StatesCollectionID,
		LinkPrefix:         dir.LinkPrefix,
	}
}

// View is the state of the three page regions after a load.
type View struct {
	Loading bool
	Error   string
	Content template.HTML
	Records []RenderedRecord
}

// Pipeline composes collection, resolution and rendering.
type Pipeline struct {
	source Source
	opts   Options

	resolve func(context.Context, []models.Item, *ReferenceCache) []RenderedRecord
}

// NewPipeline creates a pipeline reading from source.
func NewPipeline(source Source, opts Options) *Pipeline {
	p := &Pipeline{source: source, opts: opts.withDefaults()}
	p.resolve = p.ResolveReferences
	return p
}

// Records collects and resolves every location. An empty collection yields an
// empty slice without running reference resolution.
func (p *Pipeline) Records(ctx context.Context) ([]RenderedRecord, error) {
	items, err := p.CollectAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []RenderedRecord{}, nil
	}
	// A fresh cache per load.
	return p.resolve(ctx, items, NewReferenceCache()), nil
}

// Load runs a full load and returns the final page state. Any failure hides the
// loading indicator and fills only the error region.
func (p *Pipeline) Load(ctx context.Context) View {
	start := time.Now()
	logger := logging.Ctx(ctx)

	records, err := p.Records(ctx)
	if err == nil {
		var content template.HTML
		content, err = RenderRecords(records)
		if err == nil {
			metrics.RecordDirectoryLoad(len(records), time.Since(start), nil)
			logger.Info().Int("locations", len(records)).Dur("duration", time.Since(start)).Msg("Loaded locations")
			return View{Content: content, Records: records}
		}
	}

	metrics.RecordDirectoryLoad(0, time.Since(start), err)
	logger.Error().Err(err).Msg("Failed to load locations")
	return View{Error: "Failed to load locations. " + err.Error()}
}
