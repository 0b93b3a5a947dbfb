// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Michael"
	default:
		return string(r)
	}
}

// =============================================================================
// LENSES
// =============================================================================

// Lens identifies one of the four perspectives an answer is elaborated under.
type Lens int

const (
	LensPhysics Lens = iota
	LensMath
	LensHuman
	LensContemplative
)

// AllLenses lists the lenses in display order.
var AllLenses = []Lens{LensPhysics, LensMath, LensHuman, LensContemplative}

// Label returns the tab label for the lens.
func (l Lens) Label() string {
	switch l {
	case LensPhysics:
		return "Physics"
	case LensMath:
		return "Math"
	case LensHuman:
		return "Human"
	case LensContemplative:
		return "Contemplative"
	default:
		return "Unknown"
	}
}

// Key returns the wire name of the lens.
func (l Lens) Key() string {
	return strings.ToLower(l.Label())
}

// Lenses holds the per-lens elaborations of an answer.
type Lenses struct {
	Physics       string `json:"physics" yaml:"physics"`
	Math          string `json:"math" yaml:"math"`
	Human         string `json:"human" yaml:"human"`
	Contemplative string `json:"contemplative" yaml:"contemplative"`
}

// Get returns the text for a single lens.
func (l Lenses) Get(lens Lens) string {
	switch lens {
	case LensPhysics:
		return l.Physics
	case LensMath:
		return l.Math
	case LensHuman:
		return l.Human
	case LensContemplative:
		return l.Contemplative
	}
	return ""
}

// Available returns the lenses with non-blank text, in display order.
func (l Lenses) Available() []Lens {
	var out []Lens
	for _, lens := range AllLenses {
		if strings.TrimSpace(l.Get(lens)) != "" {
			out = append(out, lens)
		}
	}
	return out
}

// IsEmpty reports whether every lens is blank.
func (l Lenses) IsEmpty() bool {
	return len(l.Available()) == 0
}

// =============================================================================
// CONFIDENCE AND SOURCES
// =============================================================================

// Confidence separates claims the answer is sure about from open ones.
type Confidence struct {
	Confident []string `json:"confident" yaml:"confident"`
	Uncertain []string `json:"uncertain" yaml:"uncertain"`
}

// IsEmpty reports whether both claim lists are empty.
func (c Confidence) IsEmpty() bool {
	return len(c.Confident) == 0 && len(c.Uncertain) == 0
}

// Source is a citation attached to an answer.
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Clickable reports whether the source can be opened.
func (s Source) Clickable() bool {
	return strings.TrimSpace(s.URL) != ""
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
// Messages are never modified after they are appended.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Assistant-only annotations
	Lenses     *Lenses     `json:"lenses,omitempty" yaml:"lenses,omitempty"`
	Confidence *Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Sources    []Source    `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Failed marks an assistant message synthesized from a request error.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(id, text string) *Message {
	return &Message{
		ID:        id,
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant reply carrying its annotations.
func NewAssistantMessage(id, text string, lenses Lenses, confidence Confidence, sources []Source) *Message {
	if sources == nil {
		sources = []Source{}
	}
	return &Message{
		ID:         id,
		Role:       RoleAssistant,
		Text:       text,
		CreatedAt:  time.Now(),
		Lenses:     &lenses,
		Confidence: &confidence,
		Sources:    sources,
	}
}

// NewErrorMessage creates an assistant message describing a failed request.
func NewErrorMessage(id, text string) *Message {
	return &Message{
		ID:        id,
		Role:      RoleAssistant,
		Text:      text,
		CreatedAt: time.Now(),
		Failed:    true,
	}
}

// IsUser returns true if this is a user message.
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant returns true if this is an assistant message.
func (m *Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// HasLenses reports whether the message has at least one non-blank lens.
func (m *Message) HasLenses() bool {
	return m.Lenses != nil && !m.Lenses.IsEmpty()
}

// HasConfidence reports whether the message carries any confidence claims.
func (m *Message) HasConfidence() bool {
	return m.Confidence != nil && !m.Confidence.IsEmpty()
}

// HasSources reports whether the message cites any sources.
func (m *Message) HasSources() bool {
	return len(m.Sources) > 0
}
