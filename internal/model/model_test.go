// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ID GENERATOR TESTS
// =============================================================================

func TestSequenceGenerator_UniqueWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewSequenceGenerator(func() time.Time { return fixed })

	first := gen.Next()
	second := gen.Next()

	assert.Equal(t, "msg_1700000000000_1", first)
	assert.Equal(t, "msg_1700000000000_2", second)
}

func TestSequenceGenerator_Concurrent(t *testing.T) {
	gen := NewSequenceGenerator(nil)
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := gen.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestSequenceGenerator_IndependentInstances(t *testing.T) {
	fixed := time.UnixMilli(42)
	a := NewSequenceGenerator(func() time.Time { return fixed })
	b := NewSequenceGenerator(func() time.Time { return fixed })

	assert.Equal(t, a.Next(), b.Next(), "generators must not share hidden state")
}

// =============================================================================
// LENS TESTS
// =============================================================================

func TestLenses_Available(t *testing.T) {
	tests := []struct {
		name   string
		lenses Lenses
		want   []Lens
	}{
		{"all blank", Lenses{}, nil},
		{"whitespace only", Lenses{Physics: "  ", Math: "\n"}, nil},
		{"some", Lenses{Math: "groups", Contemplative: "stillness"}, []Lens{LensMath, LensContemplative}},
		{"all", Lenses{"a", "b", "c", "d"}, AllLenses},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.lenses.Available())
			assert.Equal(t, len(tc.want) == 0, tc.lenses.IsEmpty())
		})
	}
}

func TestLens_LabelAndKey(t *testing.T) {
	assert.Equal(t, "Contemplative", LensContemplative.Label())
	assert.Equal(t, "physics", LensPhysics.Key())
	assert.Equal(t, "Unknown", Lens(99).Label())
}

func TestSource_Clickable(t *testing.T) {
	assert.True(t, Source{Title: "Rayleigh", URL: "https://example.org"}.Clickable())
	assert.False(t, Source{Title: "Folk wisdom"}.Clickable())
	assert.False(t, Source{Title: "blank", URL: "   "}.Clickable())
}

func TestNewAssistantMessage_NilSourcesBecomeEmpty(t *testing.T) {
	msg := NewAssistantMessage("id", "hi", Lenses{}, Confidence{}, nil)
	require.NotNil(t, msg.Sources)
	assert.Empty(t, msg.Sources)
	assert.False(t, msg.HasLenses())
	assert.False(t, msg.HasConfidence())
	assert.False(t, msg.HasSources())
	assert.Equal(t, "Michael", msg.Role.DisplayName())
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendPreservesOrder(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("1", "q"))
	conv.Append(NewAssistantMessage("2", "a", Lenses{}, Confidence{}, nil))

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "2", conv.LastAssistant().ID)
	assert.Equal(t, "1", conv.Find("1").ID)
	assert.Nil(t, conv.Find("missing"))
}

func TestConversation_MessagesReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("1", "q"))

	msgs := conv.Messages()
	msgs[0] = nil

	assert.NotNil(t, conv.Messages()[0])
}

func TestConversation_TokenAndReset(t *testing.T) {
	conv := NewConversation()
	assert.Nil(t, conv.Token())

	conv.SetToken("resp_1")
	conv.SetToken("resp_2")
	require.NotNil(t, conv.Token())
	assert.Equal(t, "resp_2", *conv.Token())

	oldID := conv.ID
	conv.Append(NewUserMessage("1", "q"))
	conv.Reset()

	assert.True(t, conv.IsEmpty())
	assert.Nil(t, conv.Token())
	assert.NotEqual(t, oldID, conv.ID)
	assert.True(t, strings.HasPrefix(conv.ID, "conv_"))
}

func TestConversation_Snapshot(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("1", "q"))
	conv.SetToken("resp_9")

	snap := conv.Snapshot()
	assert.Equal(t, conv.ID, snap.ID)
	assert.Equal(t, "resp_9", snap.PreviousResponseID)
	assert.Len(t, snap.Messages, 1)
}
