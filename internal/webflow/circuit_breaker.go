// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package webflow

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/metrics"
)

var _ Upstream = (*BreakerClient)(nil)

// breakerComponent tags breaker log lines.
const breakerComponent = "webflow_breaker"

// BreakerClient wraps Client with a circuit breaker over the transport.
//
// Only failures to obtain a response count against the breaker. A 4xx or 5xx from
// Webflow is still a response and is relayed with its own status code.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[*Response]
	name   string
}

// BreakerSettings tunes the breaker; zero values take the defaults below.
type BreakerSettings struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	Timeout      time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	return s
}

// NewBreakerClient wraps client. Opens after FailureRatio transport failures across at
// least MinRequests calls, then probes again after Timeout.
func NewBreakerClient(client *Client, settings BreakerSettings) *BreakerClient {
	settings = settings.withDefaults()
	name := "webflow-api"

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= settings.FailureRatio {
				logger := logging.WithComponent(breakerComponent)
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening Webflow circuit")
				return true
			}
			return false
		},
		// A caller hanging up is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger := logging.WithComponent(breakerComponent)
			logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] Webflow state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: name}
}

// CollectionItems delegates to the wrapped client.
func (b *BreakerClient) CollectionItems(collectionID, offset, limit string) Request {
	return b.client.CollectionItems(collectionID, offset, limit)
}

// Item delegates to the wrapped client.
func (b *BreakerClient) Item(collectionID, itemID string) Request {
	return b.client.Item(collectionID, itemID)
}

// Do runs the request through the breaker.
func (b *BreakerClient) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := b.cb.Execute(func() (*Response, error) {
		return b.client.Do(ctx, req)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	}
	return resp, err
}

// State exposes the breaker state for health reporting.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
