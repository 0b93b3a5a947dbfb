// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ErrEmptyBaseURL indicates the client has no endpoint configured.
var ErrEmptyBaseURL = errors.New("api base URL is not configured")

// ServerError is returned when the endpoint answers with a non-2xx status.
type ServerError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error %d: %s", e.StatusCode, e.Body)
}

// FormatError is returned when a response body does not match the schema.
type FormatError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid response: %s", e.Reason)
	}
	return fmt.Sprintf("invalid response: %s: %s", e.Field, e.Reason)
}

// NetworkError is returned when no response was received.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether err is a ServerError, returning it if so.
func IsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
