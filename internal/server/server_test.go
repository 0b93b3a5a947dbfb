// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeGenerator struct {
	mu    sync.Mutex
	texts []string
	prevs []*string
	resp  *api.ChatResponse
	err   error
	panic bool
}

func (g *fakeGenerator) Generate(_ context.Context, text string, prev *string) (*api.ChatResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.panic {
		panic("boom")
	}
	g.texts = append(g.texts, text)
	g.prevs = append(g.prevs, prev)
	return g.resp, g.err
}

func okGenerator() *fakeGenerator {
	return &fakeGenerator{resp: &api.ChatResponse{
		ResponseID: "resp_1",
		MainText:   "Because of Rayleigh scattering.",
		Lenses:     model.Lenses{Physics: "p"},
		Confidence: model.Confidence{Confident: []string{"a"}, Uncertain: []string{}},
		Sources:    []model.Source{},
	}}
}

func newTestServer(gen Generator, cfg Config) *Server {
	return New(gen, cfg, zerolog.Nop())
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e.Detail
}

// =============================================================================
// HANDLERS
// =============================================================================

func TestHealth(t *testing.T) {
	s := newTestServer(okGenerator(), Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestChat_Success(t *testing.T) {
	gen := okGenerator()
	s := newTestServer(gen, Config{})

	rec := post(t, s.Handler(), `{"user_text":"Why is the sky blue?","previous_response_id":"resp_0"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp, err := api.DecodeChatResponse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "resp_1", resp.ResponseID)
	assert.Equal(t, "p", resp.Lenses.Physics)

	require.Len(t, gen.prevs, 1)
	require.NotNil(t, gen.prevs[0])
	assert.Equal(t, "resp_0", *gen.prevs[0])

	requests, failures := s.Stats()
	assert.Equal(t, int64(1), requests)
	assert.Equal(t, int64(0), failures)
}

func TestChat_NormalizesInput(t *testing.T) {
	gen := okGenerator()
	s := newTestServer(gen, Config{})

	rec := post(t, s.Handler(), `{"user_text":"cafe\u0301","previous_response_id":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"caf\u00e9"}, gen.texts)
	assert.Nil(t, gen.prevs[0], "an empty token is treated as absent")
}

func TestChat_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"blank text", `{"user_text":"   "}`, http.StatusBadRequest},
		{"missing text", `{}`, http.StatusBadRequest},
		{"malformed", `{"user_text":`, http.StatusUnprocessableEntity},
		{"too large", `{"user_text":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := okGenerator()
			rec := post(t, newTestServer(gen, Config{}).Handler(), tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, detail(t, rec))
			assert.Empty(t, gen.texts, "generator is not called")
		})
	}
}

func TestChat_GeneratorError(t *testing.T) {
	s := newTestServer(&fakeGenerator{err: errors.New("OPENAI_API_KEY is not set")}, Config{})
	rec := post(t, s.Handler(), `{"user_text":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "OPENAI_API_KEY is not set", detail(t, rec))
	_, failures := s.Stats()
	assert.Equal(t, int64(1), failures)
}

func TestChat_PanicRecovered(t *testing.T) {
	s := newTestServer(&fakeGenerator{panic: true}, Config{})
	rec := post(t, s.Handler(), `{"user_text":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChat_WrongMethod(t *testing.T) {
	s := newTestServer(okGenerator(), Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestRequestID_Echoed(t *testing.T) {
	s := newTestServer(okGenerator(), Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		status  int
		allowed bool
	}{
		{"wildcard", []string{"*"}, "http://localhost:8081", http.StatusOK, true},
		{"exact", []string{"https://app.example.com"}, "https://app.example.com", http.StatusOK, true},
		{"subdomain", []string{"*.example.com"}, "https://web.example.com", http.StatusOK, true},
		{"disallowed", []string{"https://app.example.com"}, "https://evil.test", http.StatusBadRequest, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(okGenerator(), Config{AllowedOrigins: tc.origins})
			req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", "POST")
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.allowed {
				assert.Equal(t, tc.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(okGenerator(), Config{RateLimit: 0.001, RateBurst: 2})

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = post(t, s.Handler(), `{"user_text":"hi"}`).Code
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiter(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rl := NewRateLimiter(0, 0)
		for i := 0; i < 100; i++ {
			assert.True(t, rl.Allow("1.2.3.4"))
		}
	})

	t.Run("per client", func(t *testing.T) {
		rl := NewRateLimiter(0.001, 1)
		assert.True(t, rl.Allow("1.1.1.1"))
		assert.False(t, rl.Allow("1.1.1.1"))
		assert.True(t, rl.Allow("2.2.2.2"))
		assert.Equal(t, 2, rl.Clients())
	})

	t.Run("idle clients swept", func(t *testing.T) {
		now := time.Now()
		rl := NewRateLimiter(1, 1)
		rl.now = func() time.Time { return now }
		rl.Allow("1.1.1.1")

		now = now.Add(10 * time.Minute)
		rl.Allow("2.2.2.2")
		assert.Equal(t, 1, rl.Clients())
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct", "203.0.113.9:5000", "", "203.0.113.9"},
		{"untrusted proxy ignored", "203.0.113.9:5000", "198.51.100.1", "203.0.113.9"},
		{"trusted proxy", "127.0.0.1:5000", "198.51.100.1, 10.0.0.1", "198.51.100.1"},
		{"invalid forwarded", "127.0.0.1:5000", "not-an-ip", "127.0.0.1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			assert.Equal(t, tc.want, GetClientIP(req))
		})
	}
}

// =============================================================================
// END TO END
// =============================================================================

func TestClientRoundTrip(t *testing.T) {
	gen := okGenerator()
	ts := httptest.NewServer(newTestServer(gen, Config{}).Handler())
	defer ts.Close()

	client := api.NewClient(ts.URL)
	resp, err := client.SendMessage(context.Background(), "Why is the sky blue?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Because of Rayleigh scattering.", resp.MainText)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newTestServer(okGenerator(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
