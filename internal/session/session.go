// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/model"
)

// FallbackErrorText is shown when a failure carries no message.
const FallbackErrorText = "Something went wrong. Please try again."

// ConnectionErrorPrefix starts every synthesized error reply.
const ConnectionErrorPrefix = "Connection error: "

// Sender delivers one user turn to the backend.
type Sender interface {
	SendMessage(ctx context.Context, userText string, previousResponseID *string) (*api.ChatResponse, error)
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator sets the message ID source.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(s *Session) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the conversation, the loading flag and the sender.
type Session struct {
	mu      sync.RWMutex
	conv    *model.Conversation
	loading bool

	sender Sender
	ids    model.IDGenerator
	logger zerolog.Logger
}

// New creates an empty session that sends through sender.
func New(sender Sender, opts ...Option) *Session {
	s := &Session{
		conv:   model.NewConversation(),
		sender: sender,
		ids:    model.NewSequenceGenerator(nil),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sender returns the configured sender.
func (s *Session) Sender() Sender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sender
}

// SetSender swaps the sender used by Send, e.g. after a config reload.
// Requests already in flight are unaffected.
func (s *Session) SetSender(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

// Messages returns a copy of the message list.
func (s *Session) Messages() []*model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Messages()
}

// Len returns the number of messages.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Len()
}

// IsLoading reports whether a request is outstanding.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the continuation token, nil before the first reply.
func (s *Session) Token() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Token()
}

// ConversationID returns the ID of the current conversation.
func (s *Session) ConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.ID
}

// Find returns the message with the given ID, or nil.
func (s *Session) Find(id string) *model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Find(id)
}

// Snapshot captures the conversation for export.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Snapshot()
}

// Reset clears messages and the continuation token. A request still in
// flight will settle into the new, empty conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Reset()
	s.logger.Debug().Str("conversation", s.conv.ID).Msg("session reset")
}

// =============================================================================
// TWO-PHASE SEND
// =============================================================================

// Pending is a recorded user turn awaiting its reply.
type Pending struct {
	// UserMessage is the optimistically appended message.
	UserMessage *model.Message
	// PreviousResponseID is the token captured at Begin.
	PreviousResponseID *string
}

// Outcome is the settled result of a Pending.
type Outcome struct {
	Pending  *Pending
	Response *api.ChatResponse
	Err      error
}

// Begin appends the user message and marks the session loading. It does
// not validate text and does not block while another request is loading.
func (s *Session) Begin(text string) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := model.NewUserMessage(s.ids.Next(), text)
	s.conv.Append(msg)
	s.loading = true

	return &Pending{
		UserMessage:        msg,
		PreviousResponseID: s.conv.Token(),
	}
}

// Run performs exactly one call through sender. It does not touch any
// session state and is safe to call from another goroutine.
func (p *Pending) Run(ctx context.Context, sender Sender) Outcome {
	resp, err := sender.SendMessage(ctx, p.UserMessage.Text, p.PreviousResponseID)
	if err == nil && resp == nil {
		err = &api.FormatError{Reason: "empty response"}
	}
	return Outcome{Pending: p, Response: resp, Err: err}
}

// Settle records the outcome and clears the loading flag. On success the
// continuation token is overwritten; on failure it is left untouched and an
// error reply is appended instead. The appended message is returned.
func (s *Session) Settle(o Outcome) *model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if o.Err != nil {
		s.logger.Warn().Err(o.Err).Msg("chat request failed")
		msg := model.NewErrorMessage(s.ids.Next(), ErrorText(o.Err))
		s.conv.Append(msg)
		return msg
	}

	r := o.Response
	s.conv.SetToken(r.ResponseID)
	msg := model.NewAssistantMessage(s.ids.Next(), r.MainText, r.Lenses, r.Confidence, r.Sources)
	s.conv.Append(msg)
	s.logger.Debug().
		Str("response_id", r.ResponseID).
		Int("sources", len(r.Sources)).
		Msg("chat reply settled")
	return msg
}

// Send runs Begin, Run and Settle in order using the session's sender.
// The reply is always appended and returned; the error, if any, is the
// failure that produced an error reply.
func (s *Session) Send(ctx context.Context, text string) (*model.Message, error) {
	p := s.Begin(text)
	o := p.Run(ctx, s.Sender())
	return s.Settle(o), o.Err
}

// ErrorText converts a failure into the text of an assistant reply.
func ErrorText(err error) string {
	if err == nil {
		return FallbackErrorText
	}
	text := strings.TrimSpace(err.Error())
	if text == "" {
		return FallbackErrorText
	}
	return ConnectionErrorPrefix + text
}
