// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the in-memory state of one chat session: an append-only
// message list and the continuation token returned by the server.
// It is not safe for concurrent use; the session package guards it.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	messages []*Message
	token    *string
}

// NewConversation creates an empty conversation with a fresh ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        newConversationID(),
		CreatedAt: time.Now(),
		messages:  make([]*Message, 0),
	}
}

func newConversationID() string {
	return "conv_" + uuid.NewString()
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(msg *Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the message list.
func (c *Conversation) Messages() []*Message {
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty returns true if the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Token returns the continuation token, or nil before the first response.
func (c *Conversation) Token() *string {
	if c.token == nil {
		return nil
	}
	t := *c.token
	return &t
}

// SetToken replaces the continuation token.
func (c *Conversation) SetToken(token string) {
	c.token = &token
}

// LastAssistant returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistant() *Message {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].IsAssistant() {
			return c.messages[i]
		}
	}
	return nil
}

// Find returns the message with the given ID, or nil.
func (c *Conversation) Find(id string) *Message {
	for _, m := range c.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Reset clears messages and the continuation token and starts a new ID.
func (c *Conversation) Reset() {
	c.messages = make([]*Message, 0)
	c.token = nil
	c.ID = newConversationID()
	c.CreatedAt = time.Now()
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an exportable copy of a conversation.
type Snapshot struct {
	ID                 string     `json:"id" yaml:"id"`
	CreatedAt          time.Time  `json:"created_at" yaml:"created_at"`
	ExportedAt         time.Time  `json:"exported_at" yaml:"exported_at"`
	PreviousResponseID string     `json:"previous_response_id,omitempty" yaml:"previous_response_id,omitempty"`
	Messages           []*Message `json:"messages" yaml:"messages"`
}

// Snapshot captures the current state for export.
func (c *Conversation) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         c.ID,
		CreatedAt:  c.CreatedAt,
		ExportedAt: time.Now(),
		Messages:   c.Messages(),
	}
	if c.token != nil {
		snap.PreviousResponseID = *c.token
	}
	return snap
}
