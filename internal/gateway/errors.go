// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration failure reasons.
const (
	ReasonTokenMissing      = "API token not configured"
	ReasonCollectionMissing = "Collection ID not configured"
)

// StatusError is implemented by every error the gateway renders.
type StatusError interface {
	error
	StatusCode() int
}

// MethodNotAllowedError is returned for any verb other than GET or OPTIONS.
type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string {
	return "Method not allowed. Only GET requests are supported."
}

// StatusCode returns 405.
func (e *MethodNotAllowedError) StatusCode() int { return http.StatusMethodNotAllowed }

// ConfigurationError means the server is missing its credential or default collection.
// Retrying will not help.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "Server configuration error. " + e.Reason + "."
}

// StatusCode returns 500.
func (e *ConfigurationError) StatusCode() int { return http.StatusInternalServerError }

// UpstreamError carries a non-2xx Webflow response. Its status is relayed unchanged.
type UpstreamError struct {
	Code int
	Text string
	Body []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Webflow API error: %d %s", e.Code, e.Text)
}

// StatusCode returns the upstream status.
func (e *UpstreamError) StatusCode() int { return e.Code }

// InternalError covers failures where no usable upstream response was obtained:
// transport errors, an open circuit, or a 2xx body that is not JSON.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return "Internal server error: " + e.Cause.Error()
	}
	return "Internal server error"
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *InternalError) Unwrap() error {
	return e.Cause
}

// StatusCode returns 500.
func (e *InternalError) StatusCode() int { return http.StatusInternalServerError }

// ErrorEnvelope is the JSON body of every failed gateway response.
// Stack is part of the wire shape but never populated.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// Envelope maps err onto its wire shape and status.
func Envelope(err error) (int, ErrorEnvelope) {
	var (
		methodErr   *MethodNotAllowedError
		configErr   *ConfigurationError
		upstreamErr *UpstreamError
		internalErr *InternalError
	)

	switch {
	case errors.As(err, &methodErr):
		return methodErr.StatusCode(), ErrorEnvelope{Error: methodErr.Error()}
	case errors.As(err, &configErr):
		return configErr.StatusCode(), ErrorEnvelope{Error: configErr.Error()}
	case errors.As(err, &upstreamErr):
		return upstreamErr.StatusCode(), ErrorEnvelope{
			Error:   upstreamErr.Error(),
			Details: string(upstreamErr.Body),
		}
	case errors.As(err, &internalErr):
		env := ErrorEnvelope{Error: "Internal server error"}
		if internalErr.Cause != nil {
			env.Message = internalErr.Cause.Error()
		}
		return internalErr.StatusCode(), env
	default:
		return http.StatusInternalServerError, ErrorEnvelope{Error: "Internal server error", Message: err.Error()}
	}
}
