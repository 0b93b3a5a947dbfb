// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/config"
)

// MaxBodyBytes caps the size of a /chat request body.
const MaxBodyBytes = 64 * 1024

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Generator answers one chat turn.
type Generator interface {
	Generate(ctx context.Context, userText string, previousResponseID *string) (*api.ChatResponse, error)
}

// =============================================================================
// CONFIG
// =============================================================================

// Config controls the listener and middleware.
type Config struct {
	Addr           string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// ConfigFrom converts the [server] config section.
func ConfigFrom(c config.ServerConfig) Config {
	return Config{
		Addr:           c.Addr,
		AllowedOrigins: c.AllowedOrigins,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	}
}

// =============================================================================
// SERVER
// =============================================================================

// Server is the development backend.
type Server struct {
	gen     Generator
	config  Config
	logger  zerolog.Logger
	limiter *RateLimiter
	handler http.Handler

	requests atomic.Int64
	failures atomic.Int64
}

// New creates a server answering with gen.
func New(gen Generator, cfg Config, logger zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultCORSConfig().AllowedOrigins
	}

	s := &Server{
		gen:     gen,
		config:  cfg,
		logger:  logger,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)

	cors := DefaultCORSConfig()
	cors.AllowedOrigins = cfg.AllowedOrigins

	s.handler = Chain(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(cors),
		RateLimitMiddleware(s.limiter, logger),
	)(mux)
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Addr
}

// Stats returns the number of /chat requests served and failed.
func (s *Server) Stats() (requests, failures int64) {
	return s.requests.Load(), s.failures.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes))
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	text := norm.NFC.String(req.UserText)
	if strings.TrimSpace(text) == "" {
		writeDetail(w, http.StatusBadRequest, "user_text must not be empty")
		return
	}

	prev := req.PreviousResponseID
	if prev != nil && strings.TrimSpace(*prev) == "" {
		prev = nil
	}

	resp, err := s.gen.Generate(r.Context(), text, prev)
	if err != nil {
		s.failures.Add(1)
		s.logger.Error().
			Err(err).
			Str("request_id", RequestID(r.Context())).
			Msg("generate failed")
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// =============================================================================
// RESPONSES
// =============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
