// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Configuration constants for the chat endpoint.
const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"

	// ChatPath is the single conversational endpoint.
	ChatPath = "/chat"

	// HealthPath answers {"status":"ok"} when the backend is up.
	HealthPath = "/health"

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Client talks to the Michael backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for baseURL. No timeout is applied unless
// WithTimeout is used; requests are bounded only by their context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
}

// WithBaseURL sets a custom base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithTimeout sets an overall per-request timeout. Zero means none.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	hc := *c.httpClient
	hc.Timeout = timeout
	c.httpClient = &hc
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger attaches a logger for request tracing.
func (c *Client) WithLogger(l zerolog.Logger) *Client {
	c.logger = l
	return c
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendMessage posts one user turn. previousResponseID threads the
// conversation; nil is sent as JSON null.
func (c *Client) SendMessage(ctx context.Context, userText string, previousResponseID *string) (*ChatResponse, error) {
	body, err := c.do(ctx, http.MethodPost, ChatPath, ChatRequest{
		UserText:           userText,
		PreviousResponseID: previousResponseID,
	})
	if err != nil {
		return nil, err
	}
	return DecodeChatResponse(body)
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	body, err := c.do(ctx, http.MethodGet, HealthPath, nil)
	if err != nil {
		return nil, err
	}
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, formatErrorFrom(err)
	}
	if health.Status != "ok" {
		return &health, fmt.Errorf("backend reported status %q", health.Status)
	}
	return &health, nil
}

// do performs a single request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("request failed")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	body, err := readResponse(resp)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if err != nil && text == "" {
			text = "Unknown error"
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Body: text}
	}
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return body, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return body, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return body[:MaxResponseSize], fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
